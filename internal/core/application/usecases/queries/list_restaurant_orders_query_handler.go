package queries

import (
	"context"
	"sort"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// ListRestaurantOrdersQueryHandler merges the orders of all restaurants the
// manager runs, newest first.
type ListRestaurantOrdersQueryHandler struct {
	orders      OrderReader
	actors      ports.ActorDirectory
	restaurants ports.RestaurantDirectory
}

func NewListRestaurantOrdersQueryHandler(
	orders OrderReader,
	actors ports.ActorDirectory,
	restaurants ports.RestaurantDirectory,
) ListRestaurantOrdersQueryHandler {
	return ListRestaurantOrdersQueryHandler{
		orders:      orders,
		actors:      actors,
		restaurants: restaurants,
	}
}

func (h ListRestaurantOrdersQueryHandler) Handle(ctx context.Context, query ListRestaurantOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	manager, err := resolveActor(ctx, h.actors, query.ManagerID(), "list restaurant orders", actor.RestaurantManager)
	if err != nil {
		return nil, err
	}

	restaurantIDs, err := h.restaurants.ManagedBy(ctx, manager.ID())
	if err != nil {
		return nil, err
	}

	var merged []*order.Order
	for _, restaurantID := range restaurantIDs {
		orders, listErr := h.orders.ListByRestaurant(ctx, restaurantID)
		if listErr != nil {
			return nil, listErr
		}
		for _, o := range orders {
			if query.Status() == order.Unknown || o.Status() == query.Status() {
				merged = append(merged, o)
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt().After(merged[j].CreatedAt())
	})
	return NewOrderViews(merged), nil
}
