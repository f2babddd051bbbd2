package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrRemindUnclaimedOrdersCommandIsNotConstructed = errors.New(
	"RemindUnclaimedOrdersCommand must be created via NewRemindUnclaimedOrdersCommand constructor",
)

// RemindUnclaimedOrdersCommand re-announces confirmed orders that have waited
// at least MinAge without a courier.
type RemindUnclaimedOrdersCommand struct {
	minAge time.Duration

	guard guard.ConstructorGuard
}

func NewRemindUnclaimedOrdersCommand(minAge time.Duration) (RemindUnclaimedOrdersCommand, error) {
	if minAge < 0 {
		return RemindUnclaimedOrdersCommand{}, errs.NewValueIsInvalidError("minAge")
	}

	return RemindUnclaimedOrdersCommand{
		minAge: minAge,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RemindUnclaimedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRemindUnclaimedOrdersCommandIsNotConstructed)
}

func (c RemindUnclaimedOrdersCommand) MinAge() time.Duration {
	return c.minAge
}
