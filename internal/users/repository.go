package users

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups when no user matches.
var ErrNotFound = errors.New("user not found")

// Lookup is the read capability the rest of the system depends on. The
// authentication flow uses GetByAuthentication to map an external identity
// to a local user; the HTTP layer uses GetByID.
type Lookup interface {
	// GetByID returns the user with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id UserID) (*UserResource, error)

	// GetByAuthentication returns the user holding the given external
	// authentication details, or ErrNotFound.
	GetByAuthentication(ctx context.Context, service AuthenticationService, id AuthenticationID) (*UserResource, error)
}
