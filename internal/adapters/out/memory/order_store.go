package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

type orderEntry struct {
	mu    sync.Mutex
	order *order.Order
}

func (e *orderEntry) snapshot() *order.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.order.Clone()
}

// OrderStore keeps orders in memory. Callers always receive copies.
type OrderStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*orderEntry
}

var _ ports.OrderRepository = (*OrderStore)(nil)

func NewOrderStore() *OrderStore {
	return &OrderStore{entries: make(map[uuid.UUID]*orderEntry)}
}

func (s *OrderStore) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := aggregate.ID().Raw()
	if _, exists := s.entries[key]; exists {
		return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s already exists", aggregate.ID()))
	}
	s.entries[key] = &orderEntry{order: aggregate.Clone()}
	return nil
}

func (s *OrderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	return e.snapshot(), nil
}

func (s *OrderStore) ConditionalUpdate(
	_ context.Context,
	id kernel.UUID,
	predicate ports.OrderPredicate,
	mutate ports.OrderMutation,
) (*order.Order, bool, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.order.Clone()
	if !predicate(current) {
		return current, false, nil
	}
	if err = mutate(current); err != nil {
		return nil, false, err
	}

	current.BumpVersion()
	e.order = current
	return current.Clone(), true, nil
}

func (s *OrderStore) ListByCustomer(_ context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return s.list(func(o *order.Order) bool { return o.Customer().IsEqual(customerID) }, newestFirst), nil
}

func (s *OrderStore) ListByRestaurant(_ context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	return s.list(func(o *order.Order) bool { return o.Restaurant().IsEqual(restaurantID) }, newestFirst), nil
}

func (s *OrderStore) ListByStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	return s.list(func(o *order.Order) bool { return o.Status() == status }, oldestFirst), nil
}

func (s *OrderStore) entry(id kernel.UUID) (*orderEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	e, ok := s.entries[id.Raw()]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return e, nil
}

func (s *OrderStore) list(keep func(*order.Order) bool, less func(a, b *order.Order) bool) []*order.Order {
	s.mu.RLock()
	entries := make([]*orderEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]*order.Order, 0)
	for _, e := range entries {
		if o := e.snapshot(); keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func newestFirst(a, b *order.Order) bool {
	if a.CreatedAt().Equal(b.CreatedAt()) {
		return a.ID().String() < b.ID().String()
	}
	return a.CreatedAt().After(b.CreatedAt())
}

func oldestFirst(a, b *order.Order) bool {
	if a.CreatedAt().Equal(b.CreatedAt()) {
		return a.ID().String() < b.ID().String()
	}
	return a.CreatedAt().Before(b.CreatedAt())
}
