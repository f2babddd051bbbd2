package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
)

// DeviceTokenStore keeps at most one push token per actor.
type DeviceTokenStore interface {
	// TokenFor returns the actor's token; ok is false when none is registered.
	TokenFor(ctx context.Context, actorID kernel.UUID) (token actor.DeviceToken, ok bool, err error)

	// RegisterToken stores token for the actor, replacing any previous one.
	RegisterToken(ctx context.Context, actorID kernel.UUID, token actor.DeviceToken) error
}

// ActorDirectory resolves identities owned by the account system.
type ActorDirectory interface {
	DeviceTokenStore

	// Resolve returns the actor with its role. Unknown identifiers yield an
	// errs.ObjectNotFoundError.
	Resolve(ctx context.Context, actorID kernel.UUID) (actor.Actor, error)

	// ActorsWithRole lists every actor currently holding role. The result is
	// read fresh on every call.
	ActorsWithRole(ctx context.Context, role actor.Role) ([]kernel.UUID, error)
}

// RestaurantDirectory maps restaurants to the manager accountable for them.
type RestaurantDirectory interface {
	// ManagerOf returns the manager of restaurantID or an errs.ObjectNotFoundError.
	ManagerOf(ctx context.Context, restaurantID kernel.UUID) (kernel.UUID, error)

	// ManagedBy lists the restaurants managerID is responsible for.
	ManagedBy(ctx context.Context, managerID kernel.UUID) ([]kernel.UUID, error)
}
