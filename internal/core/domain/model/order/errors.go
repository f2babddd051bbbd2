package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel behind InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrAlreadyClaimed is returned to every courier that loses a claim race.
	ErrAlreadyClaimed = errors.New("order already claimed")

	// ErrWrongState is returned when a claim targets an order that is not
	// confirmed and has no courier.
	ErrWrongState = errors.New("order is not claimable in its current state")
)

// InvalidTransitionError reports an event that is not defined for the
// order's current status.
type InvalidTransitionError struct {
	From  Status
	Event Event
}

func NewInvalidTransitionError(from Status, event Event) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %q is not allowed from %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// WrongStateError carries the status a claim was attempted against.
type WrongStateError struct {
	Status Status
}

func (e *WrongStateError) Error() string {
	return fmt.Sprintf("%s: status is %s", ErrWrongState, e.Status)
}

func (e *WrongStateError) Unwrap() error {
	return ErrWrongState
}
