package users

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the persistence identity of a resource: its ID plus the
// version used for optimistic concurrency and ETags.
type Identity struct {
	ID      UserID
	Version uuid.UUID
	Created time.Time
	Updated time.Time
}

// UserResource is a persisted user: identity plus data.
type UserResource struct {
	Identity Identity
	Data     UserData
}

// NewIdentity builds a fresh identity for a new resource.
func NewIdentity() Identity {
	now := time.Now().UTC().Truncate(time.Second)
	return Identity{
		ID:      NewUserID(),
		Version: uuid.New(),
		Created: now,
		Updated: now,
	}
}
