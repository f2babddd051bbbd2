// Package services provides domain services that span more than one aggregate
// or that turn aggregate changes into outward intents.
//
// The package includes:
//   - NotificationPlanner: decides which parties are told about an order change
//     and with which message, under a configurable NotificationPolicy
package services
