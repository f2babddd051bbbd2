package notification

import (
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// Message is what a gateway delivers to a single device.
type Message struct {
	// Audience is the role the recipient was addressed in. Gateways use it to
	// pick the client application to route through.
	Audience actor.Role
	Title    string
	Body     string
	Data     map[string]string
}

// MessageFor renders task for one recipient.
func MessageFor(task Task) Message {
	return Message{
		Audience: task.Recipient.Role(),
		Title:    task.Title,
		Body:     task.Body,
		Data:     task.Metadata.Map(),
	}
}

// InboxEntry is a delivered notification as shown in the actor's history.
type InboxEntry struct {
	ID      kernel.UUID
	ActorID kernel.UUID
	OrderID kernel.UUID
	Status  order.Status
	Title   string
	Body    string
	SentAt  time.Time
}

// NewInboxEntry records that task reached actorID at sentAt.
func NewInboxEntry(actorID kernel.UUID, task Task, sentAt time.Time) InboxEntry {
	return InboxEntry{
		ID:      kernel.NewUUID(),
		ActorID: actorID,
		OrderID: task.Metadata.OrderID,
		Status:  task.Metadata.Status,
		Title:   task.Title,
		Body:    task.Body,
		SentAt:  sentAt.UTC(),
	}
}
