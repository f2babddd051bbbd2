package notification

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
)

// SelectorKind distinguishes a single addressee from a role-wide broadcast.
type SelectorKind int

const (
	SingleActor SelectorKind = iota + 1
	RoleBroadcast
)

// Selector says who should receive a task. It is resolved into concrete
// device tokens only at dispatch time.
type Selector struct {
	kind    SelectorKind
	actorID kernel.UUID
	role    actor.Role
}

// Single addresses one actor. role is the audience the actor is addressed in,
// so gateways can route per client application.
func Single(actorID kernel.UUID, role actor.Role) Selector {
	return Selector{kind: SingleActor, actorID: actorID, role: role}
}

// Broadcast addresses every actor currently holding role.
func Broadcast(role actor.Role) Selector {
	return Selector{kind: RoleBroadcast, role: role}
}

func (s Selector) Kind() SelectorKind {
	return s.kind
}

// ActorID is meaningful only for SingleActor selectors.
func (s Selector) ActorID() kernel.UUID {
	return s.actorID
}

func (s Selector) Role() actor.Role {
	return s.role
}

func (s Selector) String() string {
	switch s.kind {
	case SingleActor:
		return fmt.Sprintf("single(%s)", s.actorID)
	case RoleBroadcast:
		return fmt.Sprintf("role_broadcast(%s)", s.role)
	default:
		return "invalid"
	}
}
