package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/application/dispatch"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoUnclaimedOrders is returned when no order is due for a reminder. The
// scheduler treats it as a normal outcome.
var ErrNoUnclaimedOrders = errors.New("no unclaimed orders to remind about")

// ReminderResult lists the orders that were re-announced.
type ReminderResult struct {
	Orders []*order.Order
	Tasks  []notification.Task
	Report dispatch.Report
}

type RemindUnclaimedOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	planner    services.NotificationPlanner
	dispatcher Dispatcher
	now        func() time.Time
}

func NewRemindUnclaimedOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	planner services.NotificationPlanner,
	dispatcher Dispatcher,
) RemindUnclaimedOrdersCommandHandler {
	return RemindUnclaimedOrdersCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// WithClock returns a copy of the handler that reads time from now.
func (h RemindUnclaimedOrdersCommandHandler) WithClock(now func() time.Time) RemindUnclaimedOrdersCommandHandler {
	h.now = now
	return h
}

// Handle broadcasts "Order Available" again for every claimable order older
// than the command's minimum age. Nothing is written.
func (h RemindUnclaimedOrdersCommandHandler) Handle(ctx context.Context, cmd RemindUnclaimedOrdersCommand) (ReminderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReminderResult{}, err
	}

	ctx, span := tracer.Start(ctx, "commands.RemindUnclaimedOrders", trace.WithAttributes(
		attribute.String("reminder.min_age", cmd.MinAge().String()),
	))
	defer span.End()

	result, err := h.handle(ctx, cmd)
	if err != nil && !errors.Is(err, ErrNoUnclaimedOrders) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

func (h RemindUnclaimedOrdersCommandHandler) handle(ctx context.Context, cmd RemindUnclaimedOrdersCommand) (ReminderResult, error) {
	confirmed, err := h.uowFactory.Create().OrderRepository().ListByStatus(ctx, order.Confirmed)
	if err != nil {
		return ReminderResult{}, err
	}

	cutoff := h.now().Add(-cmd.MinAge())
	var result ReminderResult
	for _, o := range confirmed {
		if o.CreatedAt().After(cutoff) {
			continue
		}
		tasks := h.planner.PlanReminder(o)
		if len(tasks) == 0 {
			continue
		}
		result.Orders = append(result.Orders, o)
		result.Tasks = append(result.Tasks, tasks...)
	}

	if len(result.Orders) == 0 {
		return ReminderResult{}, ErrNoUnclaimedOrders
	}

	result.Report = h.dispatcher.Dispatch(ctx, result.Tasks)
	return result, nil
}
