// Package inboxrepo persists the per-actor notification history.
package inboxrepo

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID uuid.UUID `gorm:"type:uuid;index"`
	OrderID uuid.UUID `gorm:"type:uuid"`
	Status  string
	Title   string
	Body    string
	SentAt  time.Time
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormInbox implements ports.NotificationInbox.
type GormInbox struct {
	db *gorm.DB
}

var _ ports.NotificationInbox = (*GormInbox)(nil)

func NewGormInbox(db *gorm.DB) *GormInbox {
	return &GormInbox{db: db}
}

func (i *GormInbox) Append(ctx context.Context, entry notification.InboxEntry) error {
	dto := NotificationDTO{
		ID:      entry.ID.Raw(),
		ActorID: entry.ActorID.Raw(),
		OrderID: entry.OrderID.Raw(),
		Status:  entry.Status.String(),
		Title:   entry.Title,
		Body:    entry.Body,
		SentAt:  entry.SentAt.UTC(),
	}
	return i.db.WithContext(ctx).Create(&dto).Error
}

func (i *GormInbox) ListForActor(ctx context.Context, actorID kernel.UUID, limit int) ([]notification.InboxEntry, error) {
	query := i.db.WithContext(ctx).
		Where("actor_id = ?", actorID.Raw()).
		Order("sent_at DESC, id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []NotificationDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]notification.InboxEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func toDomain(dto NotificationDTO) (notification.InboxEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return notification.InboxEntry{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return notification.InboxEntry{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return notification.InboxEntry{}, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return notification.InboxEntry{}, err
	}

	return notification.InboxEntry{
		ID:      id,
		ActorID: actorID,
		OrderID: orderID,
		Status:  status,
		Title:   dto.Title,
		Body:    dto.Body,
		SentAt:  dto.SentAt.UTC(),
	}, nil
}
