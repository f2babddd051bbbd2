package commands_test

import (
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/dispatch"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reminderFixture struct {
	manager    actor.Actor
	orderRepo  *MockOrderRepository
	uow        *MockOrderUoW
	factory    *MockOrderUoWFactory
	dispatcher *MockDispatcher
	handler    commands.RemindUnclaimedOrdersCommandHandler
}

func newReminderFixture(t *testing.T, now time.Time) reminderFixture {
	t.Helper()
	f := reminderFixture{
		manager:    newTestActor(t, actor.RestaurantManager),
		orderRepo:  new(MockOrderRepository),
		uow:        new(MockOrderUoW),
		factory:    new(MockOrderUoWFactory),
		dispatcher: new(MockDispatcher),
	}
	f.factory.On("Create").Return(f.uow).Maybe()
	f.uow.On("OrderRepository").Return(f.orderRepo).Maybe()
	f.handler = commands.NewRemindUnclaimedOrdersCommandHandler(f.factory,
		services.NewNotificationPlanner(services.DefaultNotificationPolicy()), f.dispatcher).
		WithClock(func() time.Time { return now })
	return f
}

func remindCommand(t *testing.T, minAge time.Duration) commands.RemindUnclaimedOrdersCommand {
	t.Helper()
	cmd, err := commands.NewRemindUnclaimedOrdersCommand(minAge)
	require.NoError(t, err)
	return cmd
}

func TestNewRemindUnclaimedOrdersCommand_RejectsNegativeAge(t *testing.T) {
	_, err := commands.NewRemindUnclaimedOrdersCommand(-time.Second)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRemindUnclaimedOrdersCommandHandler_Handle_RemindsOldEnoughOrders(t *testing.T) {
	now := time.Now().Add(time.Hour)
	f := newReminderFixture(t, now)
	first := confirmedOrder(t, kernel.NewUUID(), kernel.NewUUID(), f.manager)
	second := confirmedOrder(t, kernel.NewUUID(), kernel.NewUUID(), f.manager)
	report := dispatch.Report{Attempted: 4, Succeeded: 4}

	f.orderRepo.On("ListByStatus", mock.Anything, order.Confirmed).
		Return([]*order.Order{first, second}, nil).Once()
	f.dispatcher.On("Dispatch", mock.Anything, tasksTitled("Order Available", "Order Available")).
		Return(report).Once()

	result, err := f.handler.Handle(t.Context(), remindCommand(t, 5*time.Minute))

	require.NoError(t, err)
	assert.Len(t, result.Orders, 2)
	assert.Equal(t, report, result.Report)
	f.dispatcher.AssertExpectations(t)
}

func TestRemindUnclaimedOrdersCommandHandler_Handle_SkipsRecentOrders(t *testing.T) {
	f := newReminderFixture(t, time.Now())
	recent := confirmedOrder(t, kernel.NewUUID(), kernel.NewUUID(), f.manager)

	f.orderRepo.On("ListByStatus", mock.Anything, order.Confirmed).
		Return([]*order.Order{recent}, nil).Once()

	_, err := f.handler.Handle(t.Context(), remindCommand(t, time.Hour))

	require.ErrorIs(t, err, commands.ErrNoUnclaimedOrders)
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestRemindUnclaimedOrdersCommandHandler_Handle_NothingConfirmed(t *testing.T) {
	f := newReminderFixture(t, time.Now())
	f.orderRepo.On("ListByStatus", mock.Anything, order.Confirmed).Return([]*order.Order{}, nil).Once()

	_, err := f.handler.Handle(t.Context(), remindCommand(t, 0))

	require.ErrorIs(t, err, commands.ErrNoUnclaimedOrders)
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestRemindUnclaimedOrdersCommandHandler_Handle_StoreError(t *testing.T) {
	f := newReminderFixture(t, time.Now())
	storeErr := errors.New("connection reset")
	f.orderRepo.On("ListByStatus", mock.Anything, order.Confirmed).Return(nil, storeErr).Once()

	_, err := f.handler.Handle(t.Context(), remindCommand(t, 0))

	require.ErrorIs(t, err, storeErr)
}

func TestRemindUnclaimedOrdersCommandHandler_Handle_NotConstructed(t *testing.T) {
	f := newReminderFixture(t, time.Now())

	_, err := f.handler.Handle(t.Context(), commands.RemindUnclaimedOrdersCommand{})

	require.ErrorIs(t, err, commands.ErrRemindUnclaimedOrdersCommandIsNotConstructed)
}
