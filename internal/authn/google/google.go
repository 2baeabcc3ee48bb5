// Package google implements the Google OIDC provider adapter.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/hancock/internal/authn"
	"github.com/dropDatabas3/hancock/internal/observability/logger"
)

// ProviderName is the registry id this adapter is configured under.
const ProviderName = "google"

const (
	defaultAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultTokenURL = "https://www.googleapis.com/oauth2/v4/token"

	scopes = "openid email profile"
)

// Config carries the externally supplied settings for the adapter. AuthURL
// and TokenURL default to Google's published endpoints when empty; tests
// point them at local servers.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
}

// Provider is the Google adapter. Immutable after construction; safe for
// concurrent use.
type Provider struct {
	clientID     string
	clientSecret string
	redirectURL  string
	authURL      string
	tokenURL     string

	http *http.Client
}

func New(cfg Config) *Provider {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	return &Provider{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURL:  cfg.RedirectURL,
		authURL:      authURL,
		tokenURL:     tokenURL,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// StartAuthentication builds the Google authorization URL for one attempt.
func (p *Provider) StartAuthentication(nonce string) string {
	u, _ := url.Parse(p.authURL)
	q := u.Query()
	q.Set("client_id", p.clientID)
	q.Set("response_type", "code")
	q.Set("scope", scopes)
	q.Set("redirect_uri", p.redirectURL)
	q.Set("state", nonce)
	u.RawQuery = q.Encode()
	return u.String()
}

// tokenEnvelope is the response from Google's token endpoint. Only the ID
// token matters here: the identity claims live in its payload.
type tokenEnvelope struct {
	IDToken string `json:"id_token"`
}

// CompleteAuthentication verifies the callback against the nonce, exchanges
// the authorization code, and extracts the identity claims from the ID
// token. Validation order is fixed: first failure wins.
func (p *Provider) CompleteAuthentication(ctx context.Context, nonce string, params map[string]string) (*authn.ExternalIdentity, error) {
	state, ok := params["state"]
	if !ok {
		return nil, authn.MissingParameterError{Name: "state"}
	}
	if state != nonce {
		return nil, authn.ErrInvalidNonce
	}

	code, ok := params["code"]
	if !ok {
		return nil, authn.MissingParameterError{Name: "code"}
	}

	envelope, err := p.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if envelope.IDToken == "" {
		return nil, authn.AuthenticationFailedError{Reason: "No ID Token in response"}
	}

	return identityFromIDToken(envelope.IDToken)
}

func (p *Provider) exchangeCode(ctx context.Context, code string) (*tokenEnvelope, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("redirect_uri", p.redirectURL)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, authn.AuthenticationFailedError{Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, authn.AuthenticationFailedError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		logger.From(ctx).Warn("unsuccessful response from Google token endpoint",
			logger.Component("authn.google"),
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(body)))
		return nil, authn.AuthenticationFailedError{
			Reason: fmt.Sprintf("Unsuccessful response received from Google (HTTP %d)", resp.StatusCode),
		}
	}

	var envelope tokenEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, authn.AuthenticationFailedError{Reason: err.Error()}
	}
	return &envelope, nil
}

// identityFromIDToken reads the identity claims out of the ID token payload.
// The token arrived over the direct TLS exchange with Google, so its
// signature is not re-verified here.
func identityFromIDToken(idToken string) (*authn.ExternalIdentity, error) {
	claims := jwtv5.MapClaims{}
	if _, _, err := jwtv5.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, authn.AuthenticationFailedError{Reason: "Failed to decode ID Token"}
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, authn.AuthenticationFailedError{Reason: "No subject in ID Token"}
	}

	email, _ := claims["email"].(string)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, authn.AuthenticationFailedError{Reason: "Failed to parse email address from ID Token"}
	}

	name, _ := claims["name"].(string)

	return &authn.ExternalIdentity{
		ID:          sub,
		DisplayName: email,
		Email:       email,
		Name:        name,
	}, nil
}
