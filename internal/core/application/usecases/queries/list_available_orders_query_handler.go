package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// ListAvailableOrdersQueryHandler returns confirmed orders nobody has claimed,
// oldest first so the longest-waiting order is on top.
type ListAvailableOrdersQueryHandler struct {
	orders OrderReader
	actors ports.ActorDirectory
}

func NewListAvailableOrdersQueryHandler(orders OrderReader, actors ports.ActorDirectory) ListAvailableOrdersQueryHandler {
	return ListAvailableOrdersQueryHandler{orders: orders, actors: actors}
}

func (h ListAvailableOrdersQueryHandler) Handle(ctx context.Context, query ListAvailableOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := resolveActor(ctx, h.actors, query.CourierID(), "list available orders", actor.DeliveryGuy); err != nil {
		return nil, err
	}

	confirmed, err := h.orders.ListByStatus(ctx, order.Confirmed)
	if err != nil {
		return nil, err
	}

	available := make([]*order.Order, 0, len(confirmed))
	for _, o := range confirmed {
		if o.IsClaimable() {
			available = append(available, o)
		}
	}
	return NewOrderViews(available), nil
}
