package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// GetOrderQueryHandler returns a single order to the actors allowed to see it:
// its customer, the manager of its restaurant, its bound courier, and any
// courier while the order is still waiting to be claimed.
//
// Example:
//
//	query, _ := NewGetOrderQuery(orderID, actorID)
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrForbidden) {
//	    // the actor has no business with this order
//	}
type GetOrderQueryHandler struct {
	orders      OrderReader
	actors      ports.ActorDirectory
	restaurants ports.RestaurantDirectory
}

func NewGetOrderQueryHandler(
	orders OrderReader,
	actors ports.ActorDirectory,
	restaurants ports.RestaurantDirectory,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders:      orders,
		actors:      actors,
		restaurants: restaurants,
	}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	action := "view order " + query.OrderID().String()
	by, err := resolveActor(ctx, h.actors, query.ActorID(), action)
	if err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	visible := false
	switch by.Role() {
	case actor.Customer:
		visible = o.Customer().IsEqual(by.ID())
	case actor.DeliveryGuy:
		visible = o.IsBoundTo(by.ID()) || o.IsClaimable()
	case actor.RestaurantManager:
		managerID, managerErr := h.restaurants.ManagerOf(ctx, o.Restaurant())
		if managerErr != nil {
			return OrderView{}, managerErr
		}
		visible = managerID.IsEqual(by.ID())
	}
	if !visible {
		return OrderView{}, errs.NewForbiddenError(by.ID().String(), action)
	}

	return NewOrderView(o), nil
}
