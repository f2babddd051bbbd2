// Package queries contains read operations over orders and notifications.
// Every query names the actor asking; handlers decide what that actor may see
// and return read models rather than aggregates.
package queries

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderReader is the read side of the order store.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}

var _ OrderReader = (ports.OrderRepository)(nil)

// ItemView is one line of an order in the read model.
type ItemView struct {
	FoodID    kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// OrderView is the read model of an order.
//
// Example:
//
//	view := OrderView{
//	    ID:         orderID,
//	    Status:     "on_the_way",
//	    TotalPrice: decimal.RequireFromString("391.00"),
//	}
type OrderView struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	RestaurantID     kernel.UUID
	CourierID        *kernel.UUID
	Status           string
	Items            []ItemView
	TotalPrice       decimal.Decimal
	DeliveryLocation kernel.GeoPoint
	CourierLocation  *kernel.GeoPoint
	CreatedAt        time.Time
	Version          int64
}

// NewOrderView renders o for readers.
func NewOrderView(o *order.Order) OrderView {
	items := o.Items()
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{
			FoodID:    item.FoodID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		})
	}

	return OrderView{
		ID:               o.ID(),
		CustomerID:       o.Customer(),
		RestaurantID:     o.Restaurant(),
		CourierID:        o.Courier(),
		Status:           o.Status().String(),
		Items:            views,
		TotalPrice:       o.TotalPrice(),
		DeliveryLocation: o.DeliveryLocation(),
		CourierLocation:  o.CourierLocation(),
		CreatedAt:        o.CreatedAt(),
		Version:          o.Version(),
	}
}

func NewOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}

// resolveActor loads the asking actor and, when roles are given, requires one
// of them. Unknown identities are Forbidden.
func resolveActor(
	ctx context.Context,
	actors ports.ActorDirectory,
	id kernel.UUID,
	action string,
	roles ...actor.Role,
) (actor.Actor, error) {
	a, err := actors.Resolve(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return actor.Actor{}, errs.NewForbiddenErrorWithCause(id.String(), action, err)
	}
	if err != nil {
		return actor.Actor{}, err
	}
	if len(roles) == 0 {
		return a, nil
	}
	for _, role := range roles {
		if a.Is(role) {
			return a, nil
		}
	}
	return actor.Actor{}, errs.NewForbiddenError(id.String(), action)
}
