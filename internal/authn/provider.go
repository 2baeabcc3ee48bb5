// Package authn implements federated login: a registry of provider adapters,
// the start/complete protocol around them, and the mapping of external
// identities to local users.
package authn

import "context"

// ProviderID is the opaque, case-sensitive identifier of a configured
// provider. Unique within the registry.
type ProviderID string

// ExternalIdentity is the result of a successful provider exchange. It is
// never persisted; the flow consumes it immediately to resolve a local user.
type ExternalIdentity struct {
	// ID is the stable subject of the user at the provider.
	ID string

	// DisplayName labels these credentials (the claimed email address).
	DisplayName string

	Email string

	// Name is the claimed full name of the user.
	Name string
}

// Provider is the adapter for one external identity service.
type Provider interface {
	// StartAuthentication builds the authorization URL for one attempt.
	// The nonce is embedded as the anti-forgery "state" value. Pure: no I/O.
	StartAuthentication(nonce string) string

	// CompleteAuthentication exchanges the callback parameters for a
	// verified external identity. The nonce must match what the provider
	// echoed back in "state". Errors are the typed set in errors.go.
	CompleteAuthentication(ctx context.Context, nonce string, params map[string]string) (*ExternalIdentity, error)
}
