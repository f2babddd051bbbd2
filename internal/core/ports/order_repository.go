// Package ports defines the contracts between the ordering core and its
// collaborators: persistence, the actor and restaurant directories, the push
// gateway and the notification inbox.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderPredicate inspects the current stored state of an order.
type OrderPredicate func(current *order.Order) bool

// OrderMutation changes an order in place. Returning an error aborts the
// update without writing.
type OrderMutation func(current *order.Order) error

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier. Unknown identifiers yield an
	// errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ConditionalUpdate is the only write path for existing orders. Atomically
	// with respect to every other write to the same order it:
	//   - loads the current state
	//   - returns (current, false, nil) when predicate rejects it
	//   - applies mutate, returning its error without writing
	//   - persists the result with Version bumped by one and returns (updated, true, nil)
	//
	// Writes to different orders never block each other.
	ConditionalUpdate(ctx context.Context, id kernel.UUID, predicate OrderPredicate, mutate OrderMutation) (*order.Order, bool, error)

	// ListByCustomer returns the customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// ListByRestaurant returns the restaurant's orders, newest first.
	ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)

	// ListByStatus returns orders in status, oldest first.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
