// Package commands contains the business operations that change orders or
// actor registrations. Every command is built through a validating
// constructor; every handler persists through a unit of work and hands the
// resulting notification tasks to the dispatcher only after commit.
package commands

import (
	"context"

	"fooddelivery/internal/core/application/dispatch"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// Dispatcher delivers notification tasks. It never fails; outcomes are in
// the report.
type Dispatcher interface {
	Dispatch(ctx context.Context, tasks []notification.Task) dispatch.Report
}

// OrderUoWFactoryFunc adapts a function to OrderUoWFactory.
//
// Example:
//
//	factory := commands.OrderUoWFactoryFunc(func() commands.OrderUoW {
//	    return gormFactory.Create()
//	})
type OrderUoWFactoryFunc func() OrderUoW

func (f OrderUoWFactoryFunc) Create() OrderUoW {
	return f()
}
