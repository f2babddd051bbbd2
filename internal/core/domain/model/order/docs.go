// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding the customer, restaurant, item snapshot,
//     price, delivery location, bound courier and status
//   - Status: the lifecycle states and the transition table between them
//   - Event: the named triggers that move an order between states
//   - Item: an immutable line of the order snapshot
//
// Key business rules:
//   - Status only moves forward: pending -> confirmed -> assigned -> on_the_way -> delivered,
//     with pending also able to end in rejected or canceled
//   - No event is accepted from a terminal status
//   - Only the restaurant's manager accepts or rejects, only the ordering customer cancels,
//     and only the bound courier advances a claimed order
//   - A courier is bound exactly once, by claiming a confirmed order, and is never cleared
//   - Items and total price are frozen at creation
//
// Persistence adapters rebuild aggregates with RestoreOrder from a Snapshot and
// bump Version on every stored mutation.
package order
