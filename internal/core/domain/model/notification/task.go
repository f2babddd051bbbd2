package notification

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

const (
	MetaOrderID = "order_id"
	MetaStatus  = "status"
)

// Metadata is the structured payload delivered with every message.
type Metadata struct {
	OrderID kernel.UUID
	Status  order.Status
}

// Map renders the payload in the flat string form push providers expect.
func (m Metadata) Map() map[string]string {
	return map[string]string{
		MetaOrderID: m.OrderID.String(),
		MetaStatus:  m.Status.String(),
	}
}

// Task is one notification intent produced by an order change.
type Task struct {
	Recipient Selector
	Title     string
	Body      string
	Metadata  Metadata
}

func NewTask(recipient Selector, title, body string, o *order.Order) Task {
	return Task{
		Recipient: recipient,
		Title:     title,
		Body:      body,
		Metadata:  Metadata{OrderID: o.ID(), Status: o.Status()},
	}
}
