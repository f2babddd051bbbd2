package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the ordering core. It owns the lifecycle of a
// single customer order from placement to a terminal status.
//
// Order follows these invariants:
//   - customer, restaurant, items, total price and created_at never change after creation
//   - total price is the sum of the item subtotals and is never negative
//   - status only moves forward along the transition table
//   - a courier is bound exactly when the status is assigned, on_the_way or delivered
//   - version grows by one on every persisted mutation
//
// Order is not safe for concurrent mutation; stores serialize access per order.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID

	// courierID is nil until a courier claims the order
	courierID *kernel.UUID

	status     Status
	items      []Item
	totalPrice decimal.Decimal

	deliveryLocation kernel.GeoPoint

	// courierLocation is the last in-transit position reported by the courier
	courierLocation *kernel.GeoPoint

	createdAt time.Time
	version   int64

	isConstructed bool
}

// NewOrder places a pending order. The total price is computed from items.
//
// Example:
//
//	item, _ := order.NewItem(foodID, "Doro Wat", 2, decimal.RequireFromString("180.00"))
//	loc, _ := kernel.NewGeoPoint(9.0054, 38.7636)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID, []order.Item{item}, loc, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id, customerID, restaurantID kernel.UUID,
	items []Item,
	deliveryLocation kernel.GeoPoint,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(customerID, restaurantID),
		o.setItems(items),
		o.setDeliveryLocation(deliveryLocation),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.totalPrice = sumItems(o.items)
	if o.totalPrice.GreaterThanOrEqual(MaxAmount) {
		return nil, errs.NewValueIsOutOfRangeError("total price", o.totalPrice, decimal.Zero, largestAmount)
	}
	return o, nil
}

// Snapshot is the flat state of an Order used by persistence adapters.
type Snapshot struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	RestaurantID     kernel.UUID
	CourierID        *kernel.UUID
	Status           Status
	Items            []Item
	TotalPrice       decimal.Decimal
	DeliveryLocation kernel.GeoPoint
	CourierLocation  *kernel.GeoPoint
	CreatedAt        time.Time
	Version          int64
}

// RestoreOrder rebuilds an aggregate from stored state. It re-checks every
// invariant that can be verified without history.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{isConstructed: true}

	var totalErr error
	if s.TotalPrice.IsNegative() {
		totalErr = errs.NewValueIsInvalidErrorWithCause("total price", fmt.Errorf("%s is negative", s.TotalPrice))
	}
	var versionErr error
	if s.Version < 0 {
		versionErr = errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", s.Version))
	}
	var courierErr error
	if s.CourierID != nil {
		courierErr = s.CourierID.Validate()
	}
	var courierLocErr error
	if s.CourierLocation != nil {
		courierLocErr = s.CourierLocation.Validate()
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setParties(s.CustomerID, s.RestaurantID),
		o.setItems(s.Items),
		o.setDeliveryLocation(s.DeliveryLocation),
		o.setCreatedAt(s.CreatedAt),
		s.Status.Validate(),
		s.Status.ValidateCanHaveCourier(s.CourierID != nil),
		totalErr,
		versionErr,
		courierErr,
		courierLocErr,
	); err != nil {
		return nil, err
	}

	o.status = s.Status
	o.totalPrice = s.TotalPrice
	o.version = s.Version
	if s.CourierID != nil {
		id := *s.CourierID
		o.courierID = &id
	}
	if s.CourierLocation != nil {
		loc := *s.CourierLocation
		o.courierLocation = &loc
	}
	return o, nil
}

// Snapshot exports the current state. The returned value shares nothing
// mutable with the aggregate.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:               o.id,
		CustomerID:       o.customerID,
		RestaurantID:     o.restaurantID,
		CourierID:        o.Courier(),
		Status:           o.status,
		Items:            o.Items(),
		TotalPrice:       o.totalPrice,
		DeliveryLocation: o.deliveryLocation,
		CourierLocation:  o.CourierLocation(),
		CreatedAt:        o.createdAt,
		Version:          o.version,
	}
}

// Clone returns an independent copy of the aggregate.
func (o *Order) Clone() *Order {
	c := *o
	c.items = o.Items()
	c.courierID = o.Courier()
	c.courierLocation = o.CourierLocation()
	return &c
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Customer() kernel.UUID {
	return o.customerID
}

func (o *Order) Restaurant() kernel.UUID {
	return o.restaurantID
}

// Courier returns the bound courier, or nil while the order is unclaimed.
func (o *Order) Courier() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the line items in their original order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

func (o *Order) DeliveryLocation() kernel.GeoPoint {
	return o.deliveryLocation
}

// CourierLocation returns the last reported courier position, or nil.
func (o *Order) CourierLocation() *kernel.GeoPoint {
	if o.courierLocation == nil {
		return nil
	}
	loc := *o.courierLocation
	return &loc
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version is the optimistic concurrency token maintained by the stores.
func (o *Order) Version() int64 {
	return o.version
}

// BumpVersion is called by a store after it has persisted a mutation.
func (o *Order) BumpVersion() {
	o.version++
}

// IsClaimable reports whether a courier may claim the order right now.
func (o *Order) IsClaimable() bool {
	return o.status == Confirmed && o.courierID == nil
}

// IsBoundTo reports whether courierID is the courier bound to the order.
func (o *Order) IsBoundTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// CanApply checks, without mutating the order, whether by may trigger event.
// managerID is the manager of the order's restaurant.
//
// Checks run in this order:
//   - the actor holds the role the event requires (Forbidden)
//   - a manager event comes from this restaurant's manager, a customer event from this
//     order's customer (Forbidden)
//   - the event is defined for the current status (InvalidTransition)
//   - a courier event comes from the bound courier (Forbidden)
//
// Assign is never accepted here; couriers go through Claim.
//
// Returns the status the order would move to.
func (o *Order) CanApply(event Event, by actor.Actor, managerID kernel.UUID) (Status, error) {
	if err := by.Validate(); err != nil {
		return Unknown, err
	}
	if event == Assign {
		return Unknown, NewInvalidTransitionError(o.status, event)
	}

	required := event.Role()
	if required == "" {
		return Unknown, NewInvalidTransitionError(o.status, event)
	}
	if !by.Is(required) {
		return Unknown, errs.NewForbiddenErrorWithCause(by.ID().String(), string(event)+" order "+o.id.String(),
			fmt.Errorf("requires role %s, actor is %s", required, by.Role()))
	}

	switch required {
	case actor.RestaurantManager:
		if !by.ID().IsEqual(managerID) {
			return Unknown, errs.NewForbiddenErrorWithCause(by.ID().String(), string(event)+" order "+o.id.String(),
				errors.New("actor does not manage the order's restaurant"))
		}
	case actor.Customer:
		if !by.ID().IsEqual(o.customerID) {
			return Unknown, errs.NewForbiddenErrorWithCause(by.ID().String(), string(event)+" order "+o.id.String(),
				errors.New("actor did not place the order"))
		}
	}

	next, ok := o.status.Next(event)
	if !ok {
		return Unknown, NewInvalidTransitionError(o.status, event)
	}

	if required == actor.DeliveryGuy && !o.IsBoundTo(by.ID()) {
		return Unknown, errs.NewForbiddenErrorWithCause(by.ID().String(), string(event)+" order "+o.id.String(),
			errors.New("actor is not the courier bound to the order"))
	}

	return next, nil
}

// Apply performs event on behalf of by. On error the order is left unchanged.
//
// Example:
//
//	if err := o.Apply(order.Accept, manager, restaurantManagerID); err != nil {
//	    // Forbidden or InvalidTransition
//	}
func (o *Order) Apply(event Event, by actor.Actor, managerID kernel.UUID) error {
	next, err := o.CanApply(event, by, managerID)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Claim binds courier to a confirmed, unclaimed order and moves it to assigned.
//
// Returns:
//   - Forbidden if the actor is not a delivery courier
//   - ErrAlreadyClaimed if any courier (including the caller) is already bound
//   - WrongStateError if the order is not confirmed
func (o *Order) Claim(courier actor.Actor) error {
	if err := courier.Validate(); err != nil {
		return err
	}
	if !courier.Is(actor.DeliveryGuy) {
		return errs.NewForbiddenErrorWithCause(courier.ID().String(), "claim order "+o.id.String(),
			fmt.Errorf("requires role %s, actor is %s", actor.DeliveryGuy, courier.Role()))
	}
	if o.courierID != nil {
		return ErrAlreadyClaimed
	}
	next, ok := o.status.Next(Assign)
	if !ok {
		return &WrongStateError{Status: o.status}
	}

	id := courier.ID()
	o.courierID = &id
	o.status = next
	return nil
}

// UpdateCourierLocation records the in-transit position. Only the bound
// courier may report it, and only while the order is assigned or on the way.
func (o *Order) UpdateCourierLocation(courier actor.Actor, location kernel.GeoPoint) error {
	if err := errors.Join(courier.Validate(), location.Validate()); err != nil {
		return err
	}
	if !o.IsBoundTo(courier.ID()) {
		return errs.NewForbiddenErrorWithCause(courier.ID().String(), "report location of order "+o.id.String(),
			errors.New("actor is not the courier bound to the order"))
	}
	if o.status != Assigned && o.status != OnTheWay {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to report a courier location", o.status),
		)
	}
	o.courierLocation = &location
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParties(customerID, restaurantID kernel.UUID) error {
	var customerErr, restaurantErr error
	if err := customerID.Validate(); err != nil {
		customerErr = errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	if err := restaurantID.Validate(); err != nil {
		restaurantErr = errs.NewValueIsRequiredErrorWithCause("restaurant", err)
	}
	if err := errors.Join(customerErr, restaurantErr); err != nil {
		return err
	}
	o.customerID = customerID
	o.restaurantID = restaurantID
	return nil
}

// setItems requires at least one constructed item and stores a private copy.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.deliveryLocation = location
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	o.createdAt = createdAt.UTC()
	return nil
}

func sumItems(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
