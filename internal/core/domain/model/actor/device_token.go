package actor

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// maxDeviceTokenLength bounds the opaque token issued by the push provider.
const maxDeviceTokenLength = 4096

var ErrDeviceTokenIsNotConstructed = errs.NewValueIsRequiredError("device token must be created via NewDeviceToken")

// DeviceToken addresses one installed client application. An actor has at
// most one token at a time; registering a new one replaces the previous.
type DeviceToken struct {
	value string
	guard guard.ConstructorGuard
}

func NewDeviceToken(value string) (DeviceToken, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DeviceToken{}, errs.NewValueIsRequiredError("device token")
	}
	if len(value) > maxDeviceTokenLength {
		return DeviceToken{}, errs.NewValueIsInvalidErrorWithCause(
			"device token",
			fmt.Errorf("length %d exceeds %d", len(value), maxDeviceTokenLength),
		)
	}
	return DeviceToken{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (t DeviceToken) String() string {
	return t.value
}

func (t DeviceToken) Validate() error {
	return t.guard.Validate(ErrDeviceTokenIsNotConstructed)
}
