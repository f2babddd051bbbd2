package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemLine is one requested line of a new order, priced by the catalog at
// order time.
type ItemLine struct {
	FoodID    kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand represents a customer placing an order at a restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, restaurantID,
//	    []ItemLine{{FoodID: foodID, Name: "Doro Wat", Quantity: 2, UnitPrice: decimal.RequireFromString("180")}},
//	    9.0054, 38.7636)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	items        []order.Item
	location     kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every line and the delivery coordinates and
// reports all problems at once.
func NewCreateOrderCommand(
	orderID, customerID, restaurantID kernel.UUID,
	lines []ItemLine,
	lat, lon float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, customerID, restaurantID),
		cmd.setItems(lines),
		cmd.setLocation(lat, lon),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c CreateOrderCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *CreateOrderCommand) setIDs(orderID, customerID, restaurantID kernel.UUID) error {
	var customerErr, restaurantErr error
	if err := customerID.Validate(); err != nil {
		customerErr = errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	if err := restaurantID.Validate(); err != nil {
		restaurantErr = errs.NewValueIsRequiredErrorWithCause("restaurant", err)
	}
	if err := errors.Join(orderID.Validate(), customerErr, restaurantErr); err != nil {
		return err
	}

	c.orderID = orderID
	c.customerID = customerID
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setItems(lines []ItemLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(lines))
	var lineErrs []error
	for i, line := range lines {
		item, err := order.NewItem(line.FoodID, line.Name, line.Quantity, line.UnitPrice)
		if err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setLocation(lat, lon float64) error {
	location, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return err
	}

	c.location = location
	return nil
}
