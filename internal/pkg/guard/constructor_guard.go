package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard when
// the caller did not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct was built by its
// constructor. The zero value reports "not constructed".
//
// Example:
//
//	type DeviceToken struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewDeviceToken(v string) (DeviceToken, error) {
//	    if v == "" {
//	        return DeviceToken{}, errs.NewValueIsRequiredError("token")
//	    }
//	    return DeviceToken{value: v, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t DeviceToken) Validate() error {
//	    return t.guard.Validate(ErrDeviceTokenIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it only from
// the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
