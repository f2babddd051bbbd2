package memory

import (
	"context"
	"errors"

	"fooddelivery/internal/core/ports"
)

// ErrNoActiveTransaction mirrors gorm.ErrInvalidTransaction for the
// in-memory unit of work.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory hands out units of work over a shared OrderStore.
type UnitOfWorkFactory struct {
	store *OrderStore
}

func NewUnitOfWorkFactory(store *OrderStore) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork tracks the transaction lifecycle only. Every store write is
// atomic on its own and visible immediately; Rollback does not undo it.
type UnitOfWork struct {
	store  *OrderStore
	active bool
}

func (u *UnitOfWork) Begin(context.Context) error {
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.active = false
	return nil
}

func (u *UnitOfWork) Rollback(context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.active = false
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return u.store
}
