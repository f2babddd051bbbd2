package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/ports"
)

// ListNotificationsQueryHandler returns the notifications delivered to the
// asking actor, newest first.
type ListNotificationsQueryHandler struct {
	inbox  ports.NotificationInbox
	actors ports.ActorDirectory
}

func NewListNotificationsQueryHandler(inbox ports.NotificationInbox, actors ports.ActorDirectory) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{inbox: inbox, actors: actors}
}

func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]notification.InboxEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	a, err := resolveActor(ctx, h.actors, query.ActorID(), "list notifications")
	if err != nil {
		return nil, err
	}

	entries, err := h.inbox.ListForActor(ctx, a.ID(), query.Limit())
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make([]notification.InboxEntry, 0)
	}
	return entries, nil
}
