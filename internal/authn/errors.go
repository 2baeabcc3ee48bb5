package authn

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProvider means the requested provider id is not registered.
	ErrUnknownProvider = errors.New("the requested provider was unknown")

	// ErrInvalidNonce means the callback's state parameter was present but
	// did not match the nonce of this attempt. Forged or stale callback.
	ErrInvalidNonce = errors.New("state parameter does not match the nonce")

	// ErrUnexpected means external authentication succeeded but no local
	// account matched the identity. Unknown users are not auto-provisioned.
	ErrUnexpected = errors.New("an unexpected error occurred")
)

// MissingParameterError means a required callback parameter was absent.
type MissingParameterError struct {
	Name string
}

func (e MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Name)
}

// AuthenticationFailedError means the provider-side exchange failed:
// network error, non-2xx response, undecodable payload, or invalid claims.
// The caller may offer the user a fresh start.
type AuthenticationFailedError struct {
	Reason string
}

func (e AuthenticationFailedError) Error() string {
	return "authentication with the provider failed: " + e.Reason
}
