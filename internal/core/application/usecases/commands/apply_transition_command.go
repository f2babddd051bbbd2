package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand asks to move an order along its lifecycle on behalf
// of an actor: accept, reject, cancel, on_the_way or deliver.
type ApplyTransitionCommand struct {
	orderID kernel.UUID
	actorID kernel.UUID
	event   order.Event

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand parses event from its wire name.
func NewApplyTransitionCommand(orderID, actorID kernel.UUID, event string) (ApplyTransitionCommand, error) {
	e, eventErr := order.ParseEvent(event)
	if err := errors.Join(orderID.Validate(), actorID.Validate(), eventErr); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return ApplyTransitionCommand{
		orderID: orderID,
		actorID: actorID,
		event:   e,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

func (c ApplyTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ApplyTransitionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c ApplyTransitionCommand) Event() order.Event {
	return c.event
}
