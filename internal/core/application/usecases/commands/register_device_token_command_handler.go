package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// RegisterDeviceTokenCommandHandler upserts the actor's single device token.
// Only identities known to the directory may register.
type RegisterDeviceTokenCommandHandler struct {
	actors ports.ActorDirectory
}

func NewRegisterDeviceTokenCommandHandler(actors ports.ActorDirectory) RegisterDeviceTokenCommandHandler {
	return RegisterDeviceTokenCommandHandler{actors: actors}
}

func (h RegisterDeviceTokenCommandHandler) Handle(ctx context.Context, cmd RegisterDeviceTokenCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	a, err := resolveActor(ctx, h.actors, cmd.ActorID(), "register a device")
	if err != nil {
		return err
	}

	return h.actors.RegisterToken(ctx, a.ID(), cmd.Token())
}
