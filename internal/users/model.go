// Package users holds the user domain model and the lookup capability that
// the authentication flow resolves external identities against.
package users

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// UserID is the ID of a user.
type UserID struct {
	value uuid.UUID
}

// Errors returned when parsing a UserID.
var (
	ErrUserIDBlank     = errors.New("user id was blank")
	ErrUserIDMalformed = errors.New("user id was malformed")
)

// NewUserID generates a fresh random UserID.
func NewUserID() UserID {
	return UserID{value: uuid.New()}
}

// ParseUserID parses a string into a UserID. Surrounding whitespace is
// ignored; the remainder must be a valid UUID.
func ParseUserID(s string) (UserID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return UserID{}, ErrUserIDBlank
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return UserID{}, ErrUserIDMalformed
	}
	return UserID{value: id}, nil
}

func (u UserID) String() string { return u.value.String() }

// MarshalText lets a UserID round-trip through JSON (cache entries, claims).
func (u UserID) MarshalText() ([]byte, error) {
	return []byte(u.value.String()), nil
}

func (u *UserID) UnmarshalText(b []byte) error {
	id, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// Email is the email address of a user.
type Email string

// ErrEmailBlank is returned when parsing a blank email address.
var ErrEmailBlank = errors.New("email address was blank")

// ParseEmail parses a string into an Email. Surrounding whitespace is
// ignored; a blank result is rejected.
func ParseEmail(s string) (Email, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrEmailBlank
	}
	return Email(trimmed), nil
}

// AuthenticationService identifies the external service a set of
// authentication details belongs to ("google", ...).
type AuthenticationService string

// AuthenticationID is the ID of the user at the external service.
type AuthenticationID string

// Authentication is one set of external authentication details for a user.
type Authentication struct {
	Service     AuthenticationService `json:"service"`
	ID          AuthenticationID      `json:"id"`
	DisplayName string                `json:"displayName"`
}

// UserData is the data portion of a user resource.
type UserData struct {
	DisplayName     string
	Email           Email
	Authentications []Authentication
}
