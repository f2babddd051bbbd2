package commands_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/dispatch"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order).Clone(), args.Error(1)
}

// ConditionalUpdate runs predicate and mutate against the order configured as
// the stored state, the way a real store would.
func (m *MockOrderRepository) ConditionalUpdate(
	ctx context.Context,
	id kernel.UUID,
	predicate ports.OrderPredicate,
	mutate ports.OrderMutation,
) (*order.Order, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, false, args.Error(1)
	}
	current := args.Get(0).(*order.Order).Clone()
	if !predicate(current) {
		return current, false, nil
	}
	if err := mutate(current); err != nil {
		return nil, false, err
	}
	current.BumpVersion()
	return current, true, nil
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockActorDirectory struct{ mock.Mock }

func (m *MockActorDirectory) Resolve(ctx context.Context, actorID kernel.UUID) (actor.Actor, error) {
	args := m.Called(ctx, actorID)
	return args.Get(0).(actor.Actor), args.Error(1)
}

func (m *MockActorDirectory) ActorsWithRole(ctx context.Context, role actor.Role) ([]kernel.UUID, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockActorDirectory) TokenFor(ctx context.Context, actorID kernel.UUID) (actor.DeviceToken, bool, error) {
	args := m.Called(ctx, actorID)
	return args.Get(0).(actor.DeviceToken), args.Bool(1), args.Error(2)
}

func (m *MockActorDirectory) RegisterToken(ctx context.Context, actorID kernel.UUID, token actor.DeviceToken) error {
	args := m.Called(ctx, actorID, token)
	return args.Error(0)
}

type MockRestaurantDirectory struct{ mock.Mock }

func (m *MockRestaurantDirectory) ManagerOf(ctx context.Context, restaurantID kernel.UUID) (kernel.UUID, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockRestaurantDirectory) ManagedBy(ctx context.Context, managerID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, tasks []notification.Task) dispatch.Report {
	args := m.Called(ctx, tasks)
	return args.Get(0).(dispatch.Report)
}

// tasksTitled matches a task batch by its titles, in order.
func tasksTitled(titles ...string) any {
	return mock.MatchedBy(func(tasks []notification.Task) bool {
		if len(tasks) != len(titles) {
			return false
		}
		for i, task := range tasks {
			if task.Title != titles[i] {
				return false
			}
		}
		return true
	})
}

func newTestActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role, string(role))
	require.NoError(t, err)
	return a
}

func newTestOrder(t *testing.T, customerID, restaurantID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Tibs", 2, decimal.NewFromInt(210))
	require.NoError(t, err)
	location, err := kernel.NewGeoPoint(9.0054, 38.7636)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID, []order.Item{item}, location, time.Now())
	require.NoError(t, err)
	return o
}

// confirmedOrder returns an order the manager has already accepted.
func confirmedOrder(t *testing.T, customerID, restaurantID kernel.UUID, manager actor.Actor) *order.Order {
	t.Helper()
	o := newTestOrder(t, customerID, restaurantID)
	require.NoError(t, o.Apply(order.Accept, manager, manager.ID()))
	return o
}
