package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrRegisterDeviceTokenCommandIsNotConstructed = errors.New(
	"RegisterDeviceTokenCommand must be created via NewRegisterDeviceTokenCommand constructor",
)

// RegisterDeviceTokenCommand stores the push token of the caller's device,
// replacing any token registered before.
type RegisterDeviceTokenCommand struct {
	actorID kernel.UUID
	token   actor.DeviceToken

	guard guard.ConstructorGuard
}

func NewRegisterDeviceTokenCommand(actorID kernel.UUID, token string) (RegisterDeviceTokenCommand, error) {
	t, tokenErr := actor.NewDeviceToken(token)
	if err := errors.Join(actorID.Validate(), tokenErr); err != nil {
		return RegisterDeviceTokenCommand{}, err
	}

	return RegisterDeviceTokenCommand{
		actorID: actorID,
		token:   t,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterDeviceTokenCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDeviceTokenCommandIsNotConstructed)
}

func (c RegisterDeviceTokenCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c RegisterDeviceTokenCommand) Token() actor.DeviceToken {
	return c.token
}
