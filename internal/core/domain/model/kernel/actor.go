package kernel

import (
	"fmt"

	"farmtrade/internal/pkg/errs"
)

// Role is the marketplace role of a user.
type Role string

const (
	// RoleBuyer purchases produce and pays for orders.
	RoleBuyer Role = "buyer"
	// RoleFarmer lists produce, sells it and ships it.
	RoleFarmer Role = "farmer"
	// RoleAdmin operates the marketplace.
	RoleAdmin Role = "admin"
)

// ParseRole converts a raw role name into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleBuyer, RoleFarmer, RoleAdmin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an Actor. The identifier must be valid and the role known.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the user identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the user role.
func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor is the user identified by id.
func (a Actor) Is(id UUID) bool {
	return a.id.Validate() == nil && a.id.IsEqual(id)
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

// Validate reports whether the actor was built by NewActor.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	if a.role == "" {
		return errs.NewValueIsRequiredError("role")
	}
	return nil
}
