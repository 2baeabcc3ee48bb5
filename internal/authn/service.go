package authn

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/dropDatabas3/hancock/internal/observability/logger"
	"github.com/dropDatabas3/hancock/internal/users"
)

// StartAuthentication is what a caller needs to begin an attempt: where to
// send the user, and the nonce that must come back with the callback.
type StartAuthentication struct {
	RedirectURL string
	Nonce       string
}

// Service orchestrates authentication across the registered providers.
//
// The registry is built once at construction and read-only afterwards, so
// the service is safe for concurrent use. Nothing is stored between Start
// and Complete: the nonce is the caller's correlation token.
type Service struct {
	providers map[ProviderID]Provider
	users     users.Lookup
}

func NewService(providers map[ProviderID]Provider, lookup users.Lookup) *Service {
	return &Service{providers: providers, users: lookup}
}

// ListProviders returns the registered provider ids sorted ascending.
func (s *Service) ListProviders() []ProviderID {
	ids := make([]ProviderID, 0, len(s.providers))
	for id := range s.providers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Start begins authentication with the requested provider. The returned
// nonce must be carried by the caller to the matching Complete call.
func (s *Service) Start(providerID ProviderID) (*StartAuthentication, error) {
	provider, ok := s.providers[providerID]
	if !ok {
		return nil, ErrUnknownProvider
	}

	nonce := uuid.NewString()
	redirectURL := provider.StartAuthentication(nonce)

	return &StartAuthentication{
		RedirectURL: redirectURL,
		Nonce:       nonce,
	}, nil
}

// Complete finishes authentication with the requested provider and resolves
// the external identity to a local user.
func (s *Service) Complete(ctx context.Context, providerID ProviderID, nonce string, params map[string]string) (*users.UserResource, error) {
	log := logger.From(ctx).With(logger.Component("authn"), logger.Provider(string(providerID)))

	provider, ok := s.providers[providerID]
	if !ok {
		return nil, ErrUnknownProvider
	}

	identity, err := provider.CompleteAuthentication(ctx, nonce, params)
	if err != nil {
		var missing MissingParameterError
		switch {
		case errors.Is(err, ErrInvalidNonce):
			log.Warn("callback state did not match nonce, possible CSRF attempt")
		case errors.As(err, &missing):
			log.Warn("callback was missing a required parameter", logger.String("parameter", missing.Name))
		default:
			log.Warn("provider exchange failed", logger.Err(err))
		}
		return nil, err
	}

	user, err := s.users.GetByAuthentication(ctx,
		users.AuthenticationService(providerID),
		users.AuthenticationID(identity.ID))
	if errors.Is(err, users.ErrNotFound) {
		log.Warn("no local account for externally authenticated identity",
			logger.String("external_id", identity.ID))
		return nil, ErrUnexpected
	}
	if err != nil {
		log.Error("user lookup failed", logger.Err(err))
		return nil, ErrUnexpected
	}

	return user, nil
}
