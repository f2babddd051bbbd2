package actorrepo

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormActorDirectory implements ports.ActorDirectory over the actors table.
// Device tokens go to the device_tokens table unless another store is
// supplied with WithTokenStore.
type GormActorDirectory struct {
	db     *gorm.DB
	tokens ports.DeviceTokenStore
}

var _ ports.ActorDirectory = (*GormActorDirectory)(nil)

type Option func(*GormActorDirectory)

// WithTokenStore delegates TokenFor and RegisterToken to store.
func WithTokenStore(store ports.DeviceTokenStore) Option {
	return func(d *GormActorDirectory) {
		d.tokens = store
	}
}

func NewGormActorDirectory(db *gorm.DB, opts ...Option) *GormActorDirectory {
	d := &GormActorDirectory{db: db}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Save inserts or replaces an actor.
func (d *GormActorDirectory) Save(ctx context.Context, a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "name"}),
	}).Create(&dto).Error
}

func (d *GormActorDirectory) Resolve(ctx context.Context, actorID kernel.UUID) (actor.Actor, error) {
	if err := actorID.Validate(); err != nil {
		return actor.Actor{}, err
	}

	var dto ActorDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", actorID.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return actor.Actor{}, errs.NewObjectNotFoundError("actor", actorID.String())
		}
		return actor.Actor{}, err
	}

	return toDomain(dto)
}

func (d *GormActorDirectory) ActorsWithRole(ctx context.Context, role actor.Role) ([]kernel.UUID, error) {
	var dtos []ActorDTO
	err := d.db.WithContext(ctx).
		Select("id").
		Where("role = ?", role.String()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (d *GormActorDirectory) TokenFor(ctx context.Context, actorID kernel.UUID) (actor.DeviceToken, bool, error) {
	if d.tokens != nil {
		return d.tokens.TokenFor(ctx, actorID)
	}

	var dto DeviceTokenDTO
	if err := d.db.WithContext(ctx).First(&dto, "actor_id = ?", actorID.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return actor.DeviceToken{}, false, nil
		}
		return actor.DeviceToken{}, false, err
	}

	token, err := actor.NewDeviceToken(dto.Token)
	if err != nil {
		return actor.DeviceToken{}, false, err
	}
	return token, true, nil
}

// RegisterToken replaces the actor's token. The actor must exist.
func (d *GormActorDirectory) RegisterToken(ctx context.Context, actorID kernel.UUID, token actor.DeviceToken) error {
	if err := token.Validate(); err != nil {
		return err
	}
	if d.tokens != nil {
		return d.tokens.RegisterToken(ctx, actorID, token)
	}

	dto := DeviceTokenDTO{
		ActorID:   actorID.Raw(),
		Token:     token.String(),
		UpdatedAt: time.Now().UTC(),
	}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(&dto).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errs.NewObjectNotFoundError("actor", actorID.String())
	}
	return err
}
