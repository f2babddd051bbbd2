// Package actor models the authenticated parties that interact with orders:
// customers, restaurant managers and delivery couriers, together with the
// push-notification device token each of them may register.
//
// Identity, role and token are owned by the surrounding account system; this
// package only carries them into the order core.
package actor
