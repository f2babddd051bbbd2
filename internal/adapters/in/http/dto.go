package http

import (
	"time"

	"fooddelivery/internal/core/application/dispatch"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/notification"

	"github.com/shopspring/decimal"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type NewOrderItem struct {
	FoodID    string          `json:"food_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type NewOrder struct {
	RestaurantID string         `json:"restaurant_id"`
	Items        []NewOrderItem `json:"items"`
	Delivery     Location       `json:"delivery"`
}

type TransitionRequest struct {
	Event string `json:"event"`
}

type DeviceTokenRequest struct {
	Token string `json:"token"`
}

type OrderItem struct {
	FoodID    string          `json:"food_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Order struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	RestaurantID    string          `json:"restaurant_id"`
	CourierID       *string         `json:"courier_id,omitempty"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Delivery        Location        `json:"delivery"`
	CourierLocation *Location       `json:"courier_location,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	Version         int64           `json:"version"`
}

// DispatchSummary tells the caller how the notifications of a change fared.
type DispatchSummary struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

type OrderChange struct {
	Order         Order           `json:"order"`
	Notifications DispatchSummary `json:"notifications"`
}

type Notification struct {
	ID      string    `json:"id"`
	OrderID string    `json:"order_id"`
	Status  string    `json:"status"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

func toOrder(v queries.OrderView) Order {
	items := make([]OrderItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderItem{
			FoodID:    item.FoodID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}

	out := Order{
		ID:           v.ID.String(),
		CustomerID:   v.CustomerID.String(),
		RestaurantID: v.RestaurantID.String(),
		Status:       v.Status,
		Items:        items,
		TotalPrice:   v.TotalPrice,
		Delivery:     Location{Lat: v.DeliveryLocation.Lat(), Lon: v.DeliveryLocation.Lon()},
		CreatedAt:    v.CreatedAt,
		Version:      v.Version,
	}
	if v.CourierID != nil {
		id := v.CourierID.String()
		out.CourierID = &id
	}
	if v.CourierLocation != nil {
		out.CourierLocation = &Location{Lat: v.CourierLocation.Lat(), Lon: v.CourierLocation.Lon()}
	}
	return out
}

func toOrders(views []queries.OrderView) []Order {
	out := make([]Order, 0, len(views))
	for _, v := range views {
		out = append(out, toOrder(v))
	}
	return out
}

func toSummary(r dispatch.Report) DispatchSummary {
	return DispatchSummary{
		Attempted: r.Attempted,
		Succeeded: r.Succeeded,
		Failed:    r.Failed,
		Skipped:   r.Skipped,
	}
}

func toNotifications(entries []notification.InboxEntry) []Notification {
	out := make([]Notification, 0, len(entries))
	for _, e := range entries {
		out = append(out, Notification{
			ID:      e.ID.String(),
			OrderID: e.OrderID.String(),
			Status:  e.Status.String(),
			Title:   e.Title,
			Body:    e.Body,
			SentAt:  e.SentAt,
		})
	}
	return out
}
