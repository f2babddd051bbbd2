package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
	"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
)

// ListAvailableOrdersQuery lists the orders a courier may claim right now.
type ListAvailableOrdersQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListAvailableOrdersQuery(courierID kernel.UUID) (ListAvailableOrdersQuery, error) {
	if err := courierID.Validate(); err != nil {
		return ListAvailableOrdersQuery{}, err
	}

	return ListAvailableOrdersQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}

func (q ListAvailableOrdersQuery) CourierID() kernel.UUID {
	return q.courierID
}
