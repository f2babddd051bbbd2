package memory_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/memory"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, customerID, restaurantID kernel.UUID, createdAt time.Time) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Beyaynetu", 1, decimal.NewFromInt(150))
	require.NoError(t, err)
	loc, _ := kernel.NewGeoPoint(9.01, 38.76)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID, []order.Item{item}, loc, createdAt)
	require.NoError(t, err)
	return o
}

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role, "")
	require.NoError(t, err)
	return a
}

func TestOrderStore_AddGet(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	o := newOrder(t, kernel.NewUUID(), kernel.NewUUID(), time.Now())

	require.NoError(t, store.Add(ctx, o))

	got, err := store.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.True(t, got.IsEqual(o))
	assert.Equal(t, order.Pending, got.Status())

	err = store.Add(ctx, o)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = store.Get(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.Error(t, store.Add(ctx, &order.Order{}))
}

func TestOrderStore_ReturnsCopies(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	manager := newActor(t, actor.RestaurantManager)
	o := newOrder(t, kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, store.Add(ctx, o))

	require.NoError(t, o.Apply(order.Accept, manager, manager.ID()))
	got, _ := store.Get(ctx, o.ID())
	require.NoError(t, got.Apply(order.Accept, manager, manager.ID()))

	again, _ := store.Get(ctx, o.ID())
	assert.Equal(t, order.Pending, again.Status())
}

func TestOrderStore_ConditionalUpdate(t *testing.T) {
	ctx := t.Context()
	manager := newActor(t, actor.RestaurantManager)

	t.Run("applies mutation and bumps version", func(t *testing.T) {
		store := memory.NewOrderStore()
		o := newOrder(t, kernel.NewUUID(), kernel.NewUUID(), time.Now())
		require.NoError(t, store.Add(ctx, o))

		updated, ok, err := store.ConditionalUpdate(ctx, o.ID(),
			func(cur *order.Order) bool { return cur.Status() == order.Pending },
			func(cur *order.Order) error { return cur.Apply(order.Accept, manager, manager.ID()) },
		)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, order.Confirmed, updated.Status())
		assert.Equal(t, int64(1), updated.Version())

		stored, _ := store.Get(ctx, o.ID())
		assert.Equal(t, order.Confirmed, stored.Status())
		assert.Equal(t, int64(1), stored.Version())
	})

	t.Run("rejected predicate returns current state without writing", func(t *testing.T) {
		store := memory.NewOrderStore()
		o := newOrder(t, kernel.NewUUID(), kernel.NewUUID(), time.Now())
		require.NoError(t, store.Add(ctx, o))
		called := false

		current, ok, err := store.ConditionalUpdate(ctx, o.ID(),
			func(*order.Order) bool { return false },
			func(*order.Order) error { called = true; return nil },
		)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, called)
		assert.Equal(t, order.Pending, current.Status())
		assert.Equal(t, int64(0), current.Version())
	})

	t.Run("mutation error leaves the order untouched", func(t *testing.T) {
		store := memory.NewOrderStore()
		o := newOrder(t, kernel.NewUUID(), kernel.NewUUID(), time.Now())
		require.NoError(t, store.Add(ctx, o))
		boom := errors.New("boom")

		_, ok, err := store.ConditionalUpdate(ctx, o.ID(),
			func(*order.Order) bool { return true },
			func(cur *order.Order) error {
				_ = cur.Apply(order.Accept, manager, manager.ID())
				return boom
			},
		)

		require.ErrorIs(t, err, boom)
		assert.False(t, ok)
		stored, _ := store.Get(ctx, o.ID())
		assert.Equal(t, order.Pending, stored.Status())
		assert.Equal(t, int64(0), stored.Version())
	})

	t.Run("unknown order", func(t *testing.T) {
		store := memory.NewOrderStore()

		_, _, err := store.ConditionalUpdate(ctx, kernel.NewUUID(),
			func(*order.Order) bool { return true },
			func(*order.Order) error { return nil },
		)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrderStore_ConcurrentClaimHasOneWinner(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	manager := newActor(t, actor.RestaurantManager)
	o := newOrder(t, kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, o.Apply(order.Accept, manager, manager.ID()))
	require.NoError(t, store.Add(ctx, o))

	const couriers = 32
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins []kernel.UUID
	)
	for range couriers {
		courier := newActor(t, actor.DeliveryGuy)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := store.ConditionalUpdate(ctx, o.ID(),
				func(cur *order.Order) bool { return cur.IsClaimable() },
				func(cur *order.Order) error { return cur.Claim(courier) },
			)
			if err == nil && ok {
				mu.Lock()
				wins = append(wins, courier.ID())
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, wins, 1)
	stored, _ := store.Get(ctx, o.ID())
	assert.True(t, stored.IsBoundTo(wins[0]))
	assert.Equal(t, int64(1), stored.Version())
}

func TestOrderStore_Lists(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	manager := newActor(t, actor.RestaurantManager)
	customer, restaurant := kernel.NewUUID(), kernel.NewUUID()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	older := newOrder(t, customer, restaurant, base)
	newer := newOrder(t, customer, restaurant, base.Add(time.Hour))
	foreign := newOrder(t, kernel.NewUUID(), kernel.NewUUID(), base.Add(30*time.Minute))
	require.NoError(t, newer.Apply(order.Accept, manager, manager.ID()))
	require.NoError(t, foreign.Apply(order.Accept, manager, manager.ID()))
	for _, o := range []*order.Order{older, newer, foreign} {
		require.NoError(t, store.Add(ctx, o))
	}

	byCustomer, err := store.ListByCustomer(ctx, customer)
	require.NoError(t, err)
	require.Len(t, byCustomer, 2)
	assert.True(t, byCustomer[0].IsEqual(newer))
	assert.True(t, byCustomer[1].IsEqual(older))

	byRestaurant, err := store.ListByRestaurant(ctx, restaurant)
	require.NoError(t, err)
	assert.Len(t, byRestaurant, 2)

	confirmed, err := store.ListByStatus(ctx, order.Confirmed)
	require.NoError(t, err)
	require.Len(t, confirmed, 2)
	assert.True(t, confirmed[0].IsEqual(foreign))
	assert.True(t, confirmed[1].IsEqual(newer))

	none, err := store.ListByStatus(ctx, order.Delivered)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUnitOfWork_Lifecycle(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	uow := memory.NewUnitOfWorkFactory(store).Create()

	require.ErrorIs(t, uow.Commit(ctx), memory.ErrNoActiveTransaction)
	require.NoError(t, uow.Begin(ctx))
	assert.Same(t, store, uow.OrderRepository())
	require.NoError(t, uow.Commit(ctx))
	require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoActiveTransaction)
}

func TestActorDirectory(t *testing.T) {
	ctx := t.Context()
	dir := memory.NewActorDirectory()
	c1, c2 := newActor(t, actor.DeliveryGuy), newActor(t, actor.DeliveryGuy)
	customer := newActor(t, actor.Customer)
	for _, a := range []actor.Actor{c1, c2, customer} {
		require.NoError(t, dir.Save(ctx, a))
	}

	got, err := dir.Resolve(ctx, customer.ID())
	require.NoError(t, err)
	assert.Equal(t, actor.Customer, got.Role())

	_, err = dir.Resolve(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	ids, err := dir.ActorsWithRole(ctx, actor.DeliveryGuy)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, ok, err := dir.TokenFor(ctx, c1.ID())
	require.NoError(t, err)
	assert.False(t, ok)

	first, _ := actor.NewDeviceToken("first")
	second, _ := actor.NewDeviceToken("second")
	require.NoError(t, dir.RegisterToken(ctx, c1.ID(), first))
	require.NoError(t, dir.RegisterToken(ctx, c1.ID(), second))
	tok, ok, err := dir.TokenFor(ctx, c1.ID())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", tok.String())

	require.Error(t, dir.RegisterToken(ctx, c2.ID(), actor.DeviceToken{}))
}

func TestRestaurantDirectory(t *testing.T) {
	ctx := t.Context()
	dir := memory.NewRestaurantDirectory()
	manager, r1, r2 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	dir.Assign(r1, manager)
	dir.Assign(r2, manager)

	got, err := dir.ManagerOf(ctx, r1)
	require.NoError(t, err)
	assert.True(t, got.IsEqual(manager))

	_, err = dir.ManagerOf(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	managed, err := dir.ManagedBy(ctx, manager)
	require.NoError(t, err)
	assert.Len(t, managed, 2)
}

func TestInbox_NewestFirstWithLimit(t *testing.T) {
	ctx := t.Context()
	inbox := memory.NewInbox()
	actorID := kernel.NewUUID()
	base := time.Now()
	for i := range 3 {
		require.NoError(t, inbox.Append(ctx, notification.InboxEntry{
			ID:      kernel.NewUUID(),
			ActorID: actorID,
			Title:   string(rune('a' + i)),
			SentAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := inbox.ListForActor(ctx, actorID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Title)

	limited, err := inbox.ListForActor(ctx, actorID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	empty, err := inbox.ListForActor(ctx, kernel.NewUUID(), 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
