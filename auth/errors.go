package auth

import "errors"

var (
	ErrUnauthenticated = errors.New("not logged in")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("status transition not permitted")
)

// Require returns nil if CanPerform allows the action, else ErrUnauthenticated (no principal) or ErrForbidden.
func Require(p *Principal, action Action, resource Resource, target Entity) error {
	if CanPerform(p, action, resource, target) {
		return nil
	}
	if p == nil {
		return ErrUnauthenticated
	}
	return ErrForbidden
}
