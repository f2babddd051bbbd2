package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ClaimOrderCommandHandler resolves the race between couriers for a confirmed
// order. Exactly one concurrent claimer wins; every other one gets
// order.ErrAlreadyClaimed and causes neither a write nor a notification.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	actors     ports.ActorDirectory
	planner    services.NotificationPlanner
	dispatcher Dispatcher
}

func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorDirectory,
	planner services.NotificationPlanner,
	dispatcher Dispatcher,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		actors:     actors,
		planner:    planner,
		dispatcher: dispatcher,
	}
}

// Handle claims the order with a single conditional update: bind the courier
// and move to assigned only if no courier is bound and the status is still
// confirmed.
//
// Returns:
//   - errs.ErrForbidden if the actor is not a delivery courier
//   - errs.ErrObjectNotFound if the order does not exist
//   - order.ErrAlreadyClaimed if a courier is already bound
//   - order.ErrWrongState if the order is unclaimed but not confirmed
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (OrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderResult{}, err
	}

	ctx, span := tracer.Start(ctx, "commands.ClaimOrder", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("courier.id", cmd.CourierID().String()),
	))
	defer span.End()

	result, err := h.handle(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

func (h ClaimOrderCommandHandler) handle(ctx context.Context, cmd ClaimOrderCommand) (OrderResult, error) {
	courier, err := resolveActor(ctx, h.actors, cmd.CourierID(), "claim order "+cmd.OrderID().String())
	if err != nil {
		return OrderResult{}, err
	}
	if !courier.Is(actor.DeliveryGuy) {
		return OrderResult{}, errs.NewForbiddenErrorWithCause(courier.ID().String(), "claim order "+cmd.OrderID().String(),
			errors.New("only delivery couriers claim orders"))
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return OrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return OrderResult{}, err
	}
	if err = current.Clone().Claim(courier); err != nil {
		return OrderResult{}, err
	}

	updated, ok, err := orderRepo.ConditionalUpdate(ctx, cmd.OrderID(),
		func(o *order.Order) bool { return o.IsClaimable() },
		func(o *order.Order) error { return o.Claim(courier) },
	)
	if err != nil {
		return OrderResult{}, err
	}
	if !ok {
		if updated.Courier() != nil {
			return OrderResult{}, order.ErrAlreadyClaimed
		}
		return OrderResult{}, &order.WrongStateError{Status: updated.Status()}
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderResult{}, err
	}

	tasks := h.planner.PlanClaimed(updated)
	return OrderResult{
		Order:  updated,
		Tasks:  tasks,
		Report: h.dispatcher.Dispatch(ctx, tasks),
	}, nil
}
