// Package notification describes what must be told to whom after an order
// changes. A Task is an ephemeral intent: it names a recipient selector, a
// title, a body and the {order_id, status} metadata, and lives only for the
// duration of one dispatch.
package notification
