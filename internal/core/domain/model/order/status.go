package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	pending ──accept──> confirmed ──claim──> assigned ──on_the_way──> on_the_way ──deliver──> delivered
//	   │
//	   ├──reject──> rejected
//	   └──cancel──> canceled
//
// delivered, rejected and canceled are terminal.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	Pending
	Confirmed
	Assigned
	OnTheWay
	Delivered
	Rejected
	Canceled
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Confirmed: "confirmed",
	Assigned:  "assigned",
	OnTheWay:  "on_the_way",
	Delivered: "delivered",
	Rejected:  "rejected",
	Canceled:  "canceled",
}

// ParseStatus converts the wire/persisted name back into a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the value is one of the defined statuses.
//
// It guards values coming from external sources (database, API) before use.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no event is defined from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Rejected || s == Canceled
}

// RequiresCourier reports whether an order in s must have a bound courier.
func (s Status) RequiresCourier() bool {
	return s == Assigned || s == OnTheWay || s == Delivered
}

// ValidateCanHaveCourier checks the consistency between status and courier
// binding:
//   - assigned, on_the_way and delivered orders must have a courier
//   - every other status must not
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && !s.RequiresCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}
	if !courier && s.RequiresCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}
	return nil
}

// Next returns the status reached by applying e from s, and false when e is
// not defined for s.
func (s Status) Next(e Event) (Status, bool) {
	next, ok := transitions[s][e]
	return next, ok
}

// transitions is the complete lifecycle graph. Terminal statuses have no row.
var transitions = map[Status]map[Event]Status{
	Pending: {
		Accept: Confirmed,
		Reject: Rejected,
		Cancel: Canceled,
	},
	Confirmed: {
		Assign: Assigned,
	},
	Assigned: {
		StartDelivery: OnTheWay,
	},
	OnTheWay: {
		Deliver: Delivered,
	},
}
