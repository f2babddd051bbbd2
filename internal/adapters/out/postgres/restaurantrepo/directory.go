// Package restaurantrepo maps restaurants to their managers.
package restaurantrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RestaurantDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ManagerID uuid.UUID `gorm:"type:uuid;index"`
	Name      string
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// GormRestaurantDirectory implements ports.RestaurantDirectory.
type GormRestaurantDirectory struct {
	db *gorm.DB
}

var _ ports.RestaurantDirectory = (*GormRestaurantDirectory)(nil)

func NewGormRestaurantDirectory(db *gorm.DB) *GormRestaurantDirectory {
	return &GormRestaurantDirectory{db: db}
}

// Save registers a restaurant or moves it to another manager.
func (d *GormRestaurantDirectory) Save(ctx context.Context, restaurantID, managerID kernel.UUID, name string) error {
	if err := errors.Join(restaurantID.Validate(), managerID.Validate()); err != nil {
		return err
	}

	dto := RestaurantDTO{ID: restaurantID.Raw(), ManagerID: managerID.Raw(), Name: name}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"manager_id", "name"}),
	}).Create(&dto).Error
}

func (d *GormRestaurantDirectory) ManagerOf(ctx context.Context, restaurantID kernel.UUID) (kernel.UUID, error) {
	if err := restaurantID.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var dto RestaurantDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", restaurantID.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, errs.NewObjectNotFoundError("restaurant", restaurantID.String())
		}
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(dto.ManagerID[:])
}

func (d *GormRestaurantDirectory) ManagedBy(ctx context.Context, managerID kernel.UUID) ([]kernel.UUID, error) {
	var dtos []RestaurantDTO
	err := d.db.WithContext(ctx).
		Where("manager_id = ?", managerID.Raw()).
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
