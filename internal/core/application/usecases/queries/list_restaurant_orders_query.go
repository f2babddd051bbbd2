package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrListRestaurantOrdersQueryIsNotConstructed = errors.New(
	"ListRestaurantOrdersQuery must be created via NewListRestaurantOrdersQuery constructor",
)

// ListRestaurantOrdersQuery lists the orders of every restaurant a manager is
// responsible for, optionally narrowed to one status ("pending" gives the
// manager's inbox of orders waiting for a decision).
type ListRestaurantOrdersQuery struct {
	managerID kernel.UUID
	status    order.Status

	guard guard.ConstructorGuard
}

// NewListRestaurantOrdersQuery accepts an empty status for "any status".
func NewListRestaurantOrdersQuery(managerID kernel.UUID, status string) (ListRestaurantOrdersQuery, error) {
	var (
		parsed    order.Status
		statusErr error
	)
	if status != "" {
		parsed, statusErr = order.ParseStatus(status)
	}
	if err := errors.Join(managerID.Validate(), statusErr); err != nil {
		return ListRestaurantOrdersQuery{}, err
	}

	return ListRestaurantOrdersQuery{
		managerID: managerID,
		status:    parsed,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantOrdersQueryIsNotConstructed)
}

func (q ListRestaurantOrdersQuery) ManagerID() kernel.UUID {
	return q.managerID
}

// Status is order.Unknown when the query is not narrowed.
func (q ListRestaurantOrdersQuery) Status() order.Status {
	return q.status
}
