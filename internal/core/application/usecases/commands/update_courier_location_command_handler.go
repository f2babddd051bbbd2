package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// UpdateCourierLocationCommandHandler stores the in-transit position of the
// bound courier. It sends no notifications.
type UpdateCourierLocationCommandHandler struct {
	uowFactory OrderUoWFactory
	actors     ports.ActorDirectory
}

func NewUpdateCourierLocationCommandHandler(
	uowFactory OrderUoWFactory,
	actors ports.ActorDirectory,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
		actors:     actors,
	}
}

func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	courier, err := resolveActor(ctx, h.actors, cmd.CourierID(), "report location of order "+cmd.OrderID().String())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The mutation carries every check, so the predicate accepts any state.
	updated, _, err := uow.OrderRepository().ConditionalUpdate(ctx, cmd.OrderID(),
		func(*order.Order) bool { return true },
		func(o *order.Order) error { return o.UpdateCourierLocation(courier, cmd.Location()) },
	)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}
