package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/application/dispatch"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("fooddelivery/commands")

// OrderResult is returned by every command that changes an order's status.
// Tasks are the notifications planned for the change and Report tells what
// happened when they were dispatched after commit.
type OrderResult struct {
	Order  *order.Order
	Tasks  []notification.Task
	Report dispatch.Report
}

// resolveActor loads the acting identity. An identity the directory does not
// know is not allowed to act at all.
func resolveActor(ctx context.Context, actors ports.ActorDirectory, id kernel.UUID, action string) (actor.Actor, error) {
	a, err := actors.Resolve(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return actor.Actor{}, errs.NewForbiddenErrorWithCause(id.String(), action, err)
	}
	if err != nil {
		return actor.Actor{}, err
	}
	return a, nil
}
