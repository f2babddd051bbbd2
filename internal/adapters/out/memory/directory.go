package memory

import (
	"context"
	"sort"
	"sync"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// ActorDirectory is an in-memory ports.ActorDirectory.
type ActorDirectory struct {
	mu     sync.RWMutex
	actors map[uuid.UUID]actor.Actor
	tokens map[uuid.UUID]actor.DeviceToken
}

var _ ports.ActorDirectory = (*ActorDirectory)(nil)

func NewActorDirectory() *ActorDirectory {
	return &ActorDirectory{
		actors: make(map[uuid.UUID]actor.Actor),
		tokens: make(map[uuid.UUID]actor.DeviceToken),
	}
}

// Save adds or replaces an actor.
func (d *ActorDirectory) Save(_ context.Context, a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actors[a.ID().Raw()] = a
	return nil
}

func (d *ActorDirectory) Resolve(_ context.Context, actorID kernel.UUID) (actor.Actor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.actors[actorID.Raw()]
	if !ok {
		return actor.Actor{}, errs.NewObjectNotFoundError("actor", actorID.String())
	}
	return a, nil
}

func (d *ActorDirectory) ActorsWithRole(_ context.Context, role actor.Role) ([]kernel.UUID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]kernel.UUID, 0)
	for _, a := range d.actors {
		if a.Is(role) {
			ids = append(ids, a.ID())
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (d *ActorDirectory) TokenFor(_ context.Context, actorID kernel.UUID) (actor.DeviceToken, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.tokens[actorID.Raw()]
	return t, ok, nil
}

func (d *ActorDirectory) RegisterToken(_ context.Context, actorID kernel.UUID, token actor.DeviceToken) error {
	if err := token.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tokens[actorID.Raw()] = token
	return nil
}

// RestaurantDirectory is an in-memory ports.RestaurantDirectory.
type RestaurantDirectory struct {
	mu          sync.RWMutex
	restaurants map[uuid.UUID]restaurant
}

type restaurant struct {
	id      kernel.UUID
	manager kernel.UUID
}

var _ ports.RestaurantDirectory = (*RestaurantDirectory)(nil)

func NewRestaurantDirectory() *RestaurantDirectory {
	return &RestaurantDirectory{restaurants: make(map[uuid.UUID]restaurant)}
}

// Assign makes managerID the manager of restaurantID.
func (d *RestaurantDirectory) Assign(restaurantID, managerID kernel.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.restaurants[restaurantID.Raw()] = restaurant{id: restaurantID, manager: managerID}
}

func (d *RestaurantDirectory) ManagerOf(_ context.Context, restaurantID kernel.UUID) (kernel.UUID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.restaurants[restaurantID.Raw()]
	if !ok {
		return kernel.UUID{}, errs.NewObjectNotFoundError("restaurant", restaurantID.String())
	}
	return r.manager, nil
}

func (d *RestaurantDirectory) ManagedBy(_ context.Context, managerID kernel.UUID) ([]kernel.UUID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]kernel.UUID, 0)
	for _, r := range d.restaurants {
		if r.manager.IsEqual(managerID) {
			ids = append(ids, r.id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}
