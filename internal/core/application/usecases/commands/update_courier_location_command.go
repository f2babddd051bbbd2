package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand reports where the bound courier currently is.
type UpdateCourierLocationCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID
	location  kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewUpdateCourierLocationCommand(orderID, courierID kernel.UUID, lat, lon float64) (UpdateCourierLocationCommand, error) {
	location, locErr := kernel.NewGeoPoint(lat, lon)
	if err := errors.Join(orderID.Validate(), courierID.Validate(), locErr); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return UpdateCourierLocationCommand{
		orderID:   orderID,
		courierID: courierID,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

func (c UpdateCourierLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateCourierLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c UpdateCourierLocationCommand) Location() kernel.GeoPoint {
	return c.location
}
