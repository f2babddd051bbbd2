package memory

import (
	"context"
	"sort"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/ports"

	"github.com/google/uuid"
)

// Inbox is an in-memory ports.NotificationInbox.
type Inbox struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]notification.InboxEntry
}

var _ ports.NotificationInbox = (*Inbox)(nil)

func NewInbox() *Inbox {
	return &Inbox{entries: make(map[uuid.UUID][]notification.InboxEntry)}
}

func (i *Inbox) Append(_ context.Context, entry notification.InboxEntry) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	key := entry.ActorID.Raw()
	i.entries[key] = append(i.entries[key], entry)
	return nil
}

func (i *Inbox) ListForActor(_ context.Context, actorID kernel.UUID, limit int) ([]notification.InboxEntry, error) {
	i.mu.Lock()
	out := append([]notification.InboxEntry(nil), i.entries[actorID.Raw()]...)
	i.mu.Unlock()

	sort.SliceStable(out, func(a, b int) bool { return out[a].SentAt.After(out[b].SentAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
