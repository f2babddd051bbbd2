package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/ports"
)

// ListCustomerOrdersQueryHandler returns the asking customer's orders, newest
// first.
type ListCustomerOrdersQueryHandler struct {
	orders OrderReader
	actors ports.ActorDirectory
}

func NewListCustomerOrdersQueryHandler(orders OrderReader, actors ports.ActorDirectory) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{orders: orders, actors: actors}
}

func (h ListCustomerOrdersQueryHandler) Handle(ctx context.Context, query ListCustomerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	customer, err := resolveActor(ctx, h.actors, query.CustomerID(), "list customer orders", actor.Customer)
	if err != nil {
		return nil, err
	}

	orders, err := h.orders.ListByCustomer(ctx, customer.ID())
	if err != nil {
		return nil, err
	}

	return NewOrderViews(orders), nil
}
