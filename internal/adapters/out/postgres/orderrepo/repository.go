package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// aggregateTracker is notified about every aggregate written through the
// repository.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. tracker may be nil.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order together with its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s already exists", aggregate.ID()))
		}
		return err
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		First(&dto, "id = ?", id.Raw()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ConditionalUpdate locks the order row for the duration of a (possibly
// nested) transaction, so concurrent writers to the same order queue up
// while writers to other orders proceed.
func (r *GormOrderRepository) ConditionalUpdate(
	ctx context.Context,
	id kernel.UUID,
	predicate ports.OrderPredicate,
	mutate ports.OrderMutation,
) (*order.Order, bool, error) {
	if err := id.Validate(); err != nil {
		return nil, false, err
	}

	var (
		result  *order.Order
		applied bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dto OrderDTO
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&dto, "id = ?", id.Raw()).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("order", id.String())
			}
			return err
		}
		if err = tx.Where("order_id = ?", dto.ID).Order("position").Find(&dto.Items).Error; err != nil {
			return err
		}

		current, err := toDomain(dto)
		if err != nil {
			return err
		}
		if !predicate(current) {
			result = current
			return nil
		}
		if err = mutate(current); err != nil {
			return err
		}

		expected := current.Version()
		current.BumpVersion()
		dto.setMutable(current.Snapshot())

		res := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, expected).
			Updates(dto.mutableColumns())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NewVersionIsInvalidErrorWithCause("version",
				fmt.Errorf("order %s changed concurrently at version %d", id, expected))
		}

		result, applied = current, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if applied {
		r.track(result)
	}
	return result, applied, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return r.list(ctx, "customer_id = ?", customerID.Raw(), "created_at DESC, id")
}

// ListByRestaurant returns the restaurant's orders, newest first.
func (r *GormOrderRepository) ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	return r.list(ctx, "restaurant_id = ?", restaurantID.Raw(), "created_at DESC, id")
}

// ListByStatus returns orders in status, oldest first.
func (r *GormOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.list(ctx, "status = ?", int(status), "created_at, id")
}

func (r *GormOrderRepository) list(ctx context.Context, where string, arg any, orderBy string) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where(where, arg).
		Order(orderBy).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) track(o *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(o.ID(), o)
	}
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
