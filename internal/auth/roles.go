// Package auth defines operative roles and the role-based access predicate
// used to gate gadget operations.
package auth

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient clearance level")
	ErrUnknownRole     = errors.New("unknown role")
)

// Role is an operative clearance level.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleHandler Role = "HANDLER"
	RoleAgent   Role = "AGENT"
)

// Identity is the resolved caller of a request. It carries no secret
// material; anything downstream of token verification sees only this.
type Identity struct {
	ID    string
	Email string
	Role  Role
}

// ParseRole maps a stored role string to a Role, rejecting anything outside
// the fixed vocabulary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleHandler, RoleAgent:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// Authorize allows the identity iff its role is in required. It is a pure
// predicate: no side effects, no logging.
func Authorize(identity *Identity, required ...Role) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	for _, r := range required {
		if identity.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
