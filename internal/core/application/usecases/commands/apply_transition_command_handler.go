package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ApplyTransitionCommandHandler runs the order lifecycle engine.
//
// Example:
//
//	cmd, _ := NewApplyTransitionCommand(orderID, managerID, "accept")
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrForbidden): // also unknown actors
//	case errors.Is(err, errs.ErrObjectNotFound):
//	case errors.Is(err, order.ErrInvalidTransition):
//	}
type ApplyTransitionCommandHandler struct {
	uowFactory  OrderUoWFactory
	actors      ports.ActorDirectory
	restaurants ports.RestaurantDirectory
	planner     services.NotificationPlanner
	dispatcher  Dispatcher
}

func NewApplyTransitionCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorDirectory,
	restaurants ports.RestaurantDirectory,
	planner services.NotificationPlanner,
	dispatcher Dispatcher,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory:  uowFactory,
		actors:      actors,
		restaurants: restaurants,
		planner:     planner,
		dispatcher:  dispatcher,
	}
}

// Handle validates the request against the stored order, then persists it
// with a conditional update that only succeeds if the status is still the one
// that was validated. The mutation re-runs every check under the store's lock.
// A request that lost a race is reported as InvalidTransition against the
// state that won.
//
// Notification tasks are dispatched after commit; their outcome never undoes
// the transition.
func (h ApplyTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyTransitionCommand) (OrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderResult{}, err
	}

	ctx, span := tracer.Start(ctx, "commands.ApplyTransition", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.event", cmd.Event().String()),
	))
	defer span.End()

	result, err := h.handle(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

func (h ApplyTransitionCommandHandler) handle(ctx context.Context, cmd ApplyTransitionCommand) (OrderResult, error) {
	by, err := resolveActor(ctx, h.actors, cmd.ActorID(), cmd.Event().String()+" order")
	if err != nil {
		return OrderResult{}, err
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

	managerID, err := h.restaurants.ManagerOf(ctx, current.Restaurant())
	if err != nil {
		return OrderResult{}, err
	}

	if _, err = current.CanApply(cmd.Event(), by, managerID); err != nil {
		return OrderResult{}, err
	}

	validated := current.Status()
	updated, ok, err := orderRepo.ConditionalUpdate(ctx, cmd.OrderID(),
		func(o *order.Order) bool { return o.Status() == validated },
		func(o *order.Order) error { return o.Apply(cmd.Event(), by, managerID) },
	)
	if err != nil {
		return OrderResult{}, err
	}
	if !ok {
		if _, err = updated.CanApply(cmd.Event(), by, managerID); err != nil {
			return OrderResult{}, err
		}
		return OrderResult{}, order.NewInvalidTransitionError(updated.Status(), cmd.Event())
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderResult{}, err
	}

	tasks := h.planner.PlanTransition(updated, cmd.Event(), managerID)
	return OrderResult{
		Order:  updated,
		Tasks:  tasks,
		Report: h.dispatcher.Dispatch(ctx, tasks),
	}, nil
}
