package ports

import "context"

// UnitOfWorkFactory hands out one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork bounds the writes of one command. Notifications for those
// writes are dispatched only after Commit returns.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is open.
	Commit(ctx context.Context) error

	// Rollback fails when no transaction is open, so a deferred Rollback
	// after a successful Commit is harmless.
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the open transaction, or to the plain
	// connection before Begin.
	OrderRepository() OrderRepository
}
