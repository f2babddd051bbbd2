package dispatch

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
)

// ErrDelivery is the sentinel behind every DeliveryError.
var ErrDelivery = errors.New("notification delivery failed")

var errUnknownSelector = errors.New("unknown recipient selector")

// DeliveryError is a per-recipient failure. It never leaves the coordinator
// except inside a Report.
type DeliveryError struct {
	Recipient notification.Selector
	ActorID   kernel.UUID
	Cause     error
}

func (e *DeliveryError) Error() string {
	if e.ActorID.Validate() != nil {
		return fmt.Sprintf("%s: %s: %v", ErrDelivery, e.Recipient, e.Cause)
	}
	return fmt.Sprintf("%s: %s actor %s: %v", ErrDelivery, e.Recipient, e.ActorID, e.Cause)
}

func (e *DeliveryError) Unwrap() []error {
	return []error{ErrDelivery, e.Cause}
}

// Outcome is the fate of one recipient of one task.
type Outcome string

const (
	Succeeded Outcome = "succeeded"
	Failed    Outcome = "failed"
	// Skipped means the recipient has no registered device.
	Skipped Outcome = "skipped"
)

// Delivery records one recipient of one task.
type Delivery struct {
	Recipient notification.Selector
	// ActorID is zero when the recipient set itself could not be resolved.
	ActorID kernel.UUID
	Title   string
	Outcome Outcome
	Err     error
}

// Report summarizes a Dispatch call. Attempted counts every recipient for
// which delivery was tried (Succeeded + Failed); Skipped recipients were never
// attempted.
type Report struct {
	Attempted  int
	Succeeded  int
	Failed     int
	Skipped    int
	Deliveries []Delivery
}

func (r *Report) add(d Delivery) {
	r.Deliveries = append(r.Deliveries, d)
	switch d.Outcome {
	case Succeeded:
		r.Attempted++
		r.Succeeded++
	case Failed:
		r.Attempted++
		r.Failed++
	case Skipped:
		r.Skipped++
	}
}

// Errors returns the DeliveryErrors of all failed deliveries.
func (r Report) Errors() []error {
	var out []error
	for _, d := range r.Deliveries {
		if d.Err != nil {
			out = append(out, d.Err)
		}
	}
	return out
}
