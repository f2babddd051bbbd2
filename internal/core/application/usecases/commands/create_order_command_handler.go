package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler places pending orders and tells the restaurant's
// manager about them.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, actors, restaurants, planner, coordinator)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// result.Order is pending, result.Report tells whether the manager was reached
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	actors      ports.ActorDirectory
	restaurants ports.RestaurantDirectory
	planner     services.NotificationPlanner
	dispatcher  Dispatcher
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorDirectory,
	restaurants ports.RestaurantDirectory,
	planner services.NotificationPlanner,
	dispatcher Dispatcher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		actors:      actors,
		restaurants: restaurants,
		planner:     planner,
		dispatcher:  dispatcher,
	}
}

// Handle checks that the caller is a customer and the restaurant exists,
// stores the order and dispatches the "New Order" notification after commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (OrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderResult{}, err
	}

	customer, err := resolveActor(ctx, h.actors, cmd.CustomerID(), "place an order")
	if err != nil {
		return OrderResult{}, err
	}
	if !customer.Is(actor.Customer) {
		return OrderResult{}, errs.NewForbiddenErrorWithCause(customer.ID().String(), "place an order",
			errors.New("only customers place orders"))
	}

	managerID, err := h.restaurants.ManagerOf(ctx, cmd.RestaurantID())
	if err != nil {
		return OrderResult{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), customer.ID(), cmd.RestaurantID(), cmd.Items(), cmd.Location(), time.Now())
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

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return OrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderResult{}, err
	}

	tasks := h.planner.PlanCreated(o, managerID)
	return OrderResult{
		Order:  o,
		Tasks:  tasks,
		Report: h.dispatcher.Dispatch(ctx, tasks),
	}, nil
}
