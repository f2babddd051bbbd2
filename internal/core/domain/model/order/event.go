package order

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/pkg/errs"
)

// Event names a requested lifecycle change.
type Event string

const (
	Accept        Event = "accept"
	Reject        Event = "reject"
	Cancel        Event = "cancel"
	Assign        Event = "assign"
	StartDelivery Event = "on_the_way"
	Deliver       Event = "deliver"
)

// ParseEvent converts the wire name into an Event.
func ParseEvent(s string) (Event, error) {
	e := Event(s)
	if _, ok := eventRoles[e]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not a known event", s))
	}
	return e, nil
}

func (e Event) String() string {
	return string(e)
}

// Role returns the only role allowed to trigger e.
func (e Event) Role() actor.Role {
	return eventRoles[e]
}

var eventRoles = map[Event]actor.Role{
	Accept:        actor.RestaurantManager,
	Reject:        actor.RestaurantManager,
	Cancel:        actor.Customer,
	Assign:        actor.DeliveryGuy,
	StartDelivery: actor.DeliveryGuy,
	Deliver:       actor.DeliveryGuy,
}
