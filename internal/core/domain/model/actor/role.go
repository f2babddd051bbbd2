package actor

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Role is the capacity in which an actor acts on orders.
type Role string

const (
	Customer          Role = "customer"
	RestaurantManager Role = "restaurant_manager"
	DeliveryGuy       Role = "delivery_guy"
)

// Roles lists every valid role in a stable order.
func Roles() []Role {
	return []Role{Customer, RestaurantManager, DeliveryGuy}
}

// ParseRole converts the persisted form back into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case Customer, RestaurantManager, DeliveryGuy:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}
