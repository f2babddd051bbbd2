package commands_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/core/application/dispatch"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, customerID, restaurantID kernel.UUID) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, restaurantID, validLines(), 9.0054, 38.7636)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := newTestActor(t, actor.Customer)
	managerID, restaurantID := kernel.NewUUID(), kernel.NewUUID()
	cmd := newCreateOrderCommand(t, customer.ID(), restaurantID)

	actors := new(MockActorDirectory)
	restaurants := new(MockRestaurantDirectory)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	dispatcher := new(MockDispatcher)
	report := dispatch.Report{Attempted: 1, Succeeded: 1}

	actors.On("Resolve", ctx, customer.ID()).Return(customer, nil).Once()
	restaurants.On("ManagerOf", ctx, restaurantID).Return(managerID, nil).Once()
	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("Dispatch", ctx, tasksTitled("New Order")).Return(report).Once(),
	)
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, actors, restaurants,
		services.NewNotificationPlanner(services.DefaultNotificationPolicy()), dispatcher)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, result.Order.Status())
	assert.True(t, decimal.NewFromInt(391).Equal(result.Order.TotalPrice()))
	require.Len(t, result.Tasks, 1)
	assert.True(t, result.Tasks[0].Recipient.ActorID().IsEqual(managerID))
	assert.Equal(t, report, result.Report)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, new(MockActorDirectory), new(MockRestaurantDirectory),
		services.NewNotificationPlanner(services.DefaultNotificationPolicy()), new(MockDispatcher))

	_, err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_OnlyCustomersOrder(t *testing.T) {
	ctx := t.Context()
	courier := newTestActor(t, actor.DeliveryGuy)
	cmd := newCreateOrderCommand(t, courier.ID(), kernel.NewUUID())

	actors := new(MockActorDirectory)
	actors.On("Resolve", ctx, courier.ID()).Return(courier, nil).Once()
	factory := new(MockOrderUoWFactory)
	dispatcher := new(MockDispatcher)

	handler := commands.NewCreateOrderCommandHandler(factory, actors, new(MockRestaurantDirectory),
		services.NewNotificationPlanner(services.DefaultNotificationPolicy()), dispatcher)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_UnknownCustomer(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd := newCreateOrderCommand(t, customerID, kernel.NewUUID())

	actors := new(MockActorDirectory)
	actors.On("Resolve", ctx, customerID).
		Return(actor.Actor{}, errs.NewObjectNotFoundError("actor", customerID.String())).Once()

	handler := commands.NewCreateOrderCommandHandler(new(MockOrderUoWFactory), actors, new(MockRestaurantDirectory),
		services.NewNotificationPlanner(services.DefaultNotificationPolicy()), new(MockDispatcher))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateOrderCommandHandler_Handle_UnknownRestaurant(t *testing.T) {
	ctx := t.Context()
	customer := newTestActor(t, actor.Customer)
	restaurantID := kernel.NewUUID()
	cmd := newCreateOrderCommand(t, customer.ID(), restaurantID)

	actors := new(MockActorDirectory)
	actors.On("Resolve", ctx, customer.ID()).Return(customer, nil).Once()
	restaurants := new(MockRestaurantDirectory)
	restaurants.On("ManagerOf", ctx, restaurantID).
		Return(kernel.UUID{}, errs.NewObjectNotFoundError("restaurant", restaurantID.String())).Once()
	factory := new(MockOrderUoWFactory)

	handler := commands.NewCreateOrderCommandHandler(factory, actors, restaurants,
		services.NewNotificationPlanner(services.DefaultNotificationPolicy()), new(MockDispatcher))
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddErrorSkipsDispatch(t *testing.T) {
	ctx := t.Context()
	customer := newTestActor(t, actor.Customer)
	managerID, restaurantID := kernel.NewUUID(), kernel.NewUUID()
	cmd := newCreateOrderCommand(t, customer.ID(), restaurantID)

	actors := new(MockActorDirectory)
	restaurants := new(MockRestaurantDirectory)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	dispatcher := new(MockDispatcher)

	actors.On("Resolve", ctx, customer.ID()).Return(customer, nil).Once()
	restaurants.On("ManagerOf", ctx, restaurantID).Return(managerID, nil).Once()
	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, actors, restaurants,
		services.NewNotificationPlanner(services.DefaultNotificationPolicy()), dispatcher)
	_, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "add error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	customer := newTestActor(t, actor.Customer)
	restaurantID := kernel.NewUUID()
	cmd := newCreateOrderCommand(t, customer.ID(), restaurantID)

	actors := new(MockActorDirectory)
	restaurants := new(MockRestaurantDirectory)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	actors.On("Resolve", ctx, customer.ID()).Return(customer, nil).Once()
	restaurants.On("ManagerOf", ctx, restaurantID).Return(kernel.NewUUID(), nil).Once()
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, actors, restaurants,
		services.NewNotificationPlanner(services.DefaultNotificationPolicy()), new(MockDispatcher))
	_, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
