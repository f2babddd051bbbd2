package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
)

// NotificationGateway performs one best-effort push delivery. Timeouts and
// retries, if any, are the gateway's own concern.
type NotificationGateway interface {
	Send(ctx context.Context, token actor.DeviceToken, msg notification.Message) error
}

// NotificationInbox keeps the history of delivered notifications per actor.
type NotificationInbox interface {
	Append(ctx context.Context, entry notification.InboxEntry) error

	// ListForActor returns at most limit entries, newest first. A limit of
	// zero or less means no limit.
	ListForActor(ctx context.Context, actorID kernel.UUID, limit int) ([]notification.InboxEntry, error)
}
