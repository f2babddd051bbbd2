package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	DefaultNotificationsLimit = 50
	MaxNotificationsLimit     = 500
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery reads an actor's notification history.
type ListNotificationsQuery struct {
	actorID kernel.UUID
	limit   int

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery uses DefaultNotificationsLimit when limit is zero.
func NewListNotificationsQuery(actorID kernel.UUID, limit int) (ListNotificationsQuery, error) {
	if limit == 0 {
		limit = DefaultNotificationsLimit
	}

	var limitErr error
	if limit < 1 || limit > MaxNotificationsLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxNotificationsLimit)
	}
	if err := errors.Join(actorID.Validate(), limitErr); err != nil {
		return ListNotificationsQuery{}, err
	}

	return ListNotificationsQuery{
		actorID: actorID,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) ActorID() kernel.UUID {
	return q.actorID
}

func (q ListNotificationsQuery) Limit() int {
	return q.limit
}
