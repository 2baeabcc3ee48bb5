package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/hancock/internal/authn"
	"github.com/dropDatabas3/hancock/internal/authz"
	"github.com/dropDatabas3/hancock/internal/http/hal"
	"github.com/dropDatabas3/hancock/internal/http/problem"
	"github.com/dropDatabas3/hancock/internal/observability/logger"
)

// Authentication drives the federated login flow over HTTP. The nonce that
// correlates Start with Complete travels in a short-lived cookie, never in
// server state.
type Authentication struct {
	flow      *authn.Service
	contexts  *authz.ContextService
	tokens    *authz.TokenService
	cookie    string
	cookieTTL time.Duration
}

func NewAuthentication(flow *authn.Service, contexts *authz.ContextService, tokens *authz.TokenService, cookieName string, cookieTTL time.Duration) *Authentication {
	return &Authentication{
		flow:      flow,
		contexts:  contexts,
		tokens:    tokens,
		cookie:    cookieName,
		cookieTTL: cookieTTL,
	}
}

// List answers with a HAL document linking every registered provider.
func (h *Authentication) List(w http.ResponseWriter, r *http.Request) {
	ids := h.flow.ListProviders()

	links := make([]hal.Link, 0, len(ids))
	for _, id := range ids {
		links = append(links, hal.Link{
			Href: fmt.Sprintf("/authentication/%s", id),
			Name: string(id),
		})
	}

	doc := hal.NewDocument(nil).
		WithLink("self", hal.Link{Href: "/authentication"}).
		WithLinks("providers", links)

	writeHAL(w, r, http.StatusOK, doc)
}

// Start redirects the client to the provider and plants the nonce cookie
// the callback must present.
func (h *Authentication) Start(w http.ResponseWriter, r *http.Request) {
	providerID := authn.ProviderID(chi.URLParam(r, "provider"))

	start, err := h.flow.Start(providerID)
	if err != nil {
		problem.Render(w, problem.NotFound())
		return
	}

	http.SetCookie(w, h.nonceCookie(start.Nonce, h.cookieTTL))
	http.Redirect(w, r, start.RedirectURL, http.StatusSeeOther)
}

type accessTokenPayload struct {
	TokenType   string    `json:"token_type"`
	AccessToken string    `json:"access_token"`
	Expires     time.Time `json:"expires"`
}

// Complete finishes the flow from the provider callback. The nonce cookie
// is cleared whether or not the attempt succeeds.
func (h *Authentication) Complete(w http.ResponseWriter, r *http.Request) {
	providerID := authn.ProviderID(chi.URLParam(r, "provider"))
	http.SetCookie(w, h.nonceCookie("", -1))

	cookie, err := r.Cookie(h.cookie)
	if err != nil || cookie.Value == "" {
		logger.From(r.Context()).Warn("authentication callback without nonce cookie",
			logger.Provider(string(providerID)))
		problem.Render(w, problem.BadRequest("authentication attempt missing or expired"))
		return
	}

	params := map[string]string{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	user, err := h.flow.Complete(r.Context(), providerID, cookie.Value, params)
	if err != nil {
		problem.Render(w, completeProblem(err))
		return
	}

	sc := h.contexts.Generate(authz.User{UserID: user.Identity.ID.String()})
	token := h.tokens.GenerateAccessToken(sc)

	doc := hal.NewDocument(accessTokenPayload{
		TokenType:   "Bearer",
		AccessToken: string(token),
		Expires:     sc.Expires,
	}).WithLink("user", hal.Link{Href: fmt.Sprintf("/users/%s", user.Identity.ID)})

	writeHAL(w, r, http.StatusOK, doc)
}

// completeProblem maps flow errors to responses. Failure detail stays
// generic so callers learn nothing about why an attempt was rejected.
func completeProblem(err error) problem.Problem {
	var missing authn.MissingParameterError
	switch {
	case errors.Is(err, authn.ErrUnknownProvider):
		return problem.NotFound()
	case errors.As(err, &missing):
		return problem.BadRequest(missing.Error())
	case errors.Is(err, authn.ErrUnexpected):
		return problem.Internal()
	default:
		return problem.BadRequest("authentication failed")
	}
}

func (h *Authentication) nonceCookie(value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     h.cookie,
		Value:    value,
		Path:     "/authentication",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		c.MaxAge = -1
	} else {
		c.MaxAge = int(maxAge.Seconds())
		c.Expires = time.Now().UTC().Add(maxAge)
	}
	return c
}
