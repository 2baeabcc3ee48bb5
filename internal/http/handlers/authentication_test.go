package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hancock/internal/authn"
	"github.com/dropDatabas3/hancock/internal/authz"
	"github.com/dropDatabas3/hancock/internal/users"
)

const nonceCookieName = "authn_nonce"

type fakeProvider struct {
	identity *authn.ExternalIdentity
	err      error
}

func (p *fakeProvider) StartAuthentication(nonce string) string {
	return "http://provider.example.com/start/" + nonce
}

func (p *fakeProvider) CompleteAuthentication(context.Context, string, map[string]string) (*authn.ExternalIdentity, error) {
	return p.identity, p.err
}

func newAuthentication(provider authn.Provider, lookup users.Lookup) *Authentication {
	providers := map[authn.ProviderID]authn.Provider{}
	if provider != nil {
		providers["stub"] = provider
	}
	return NewAuthentication(
		authn.NewService(providers, lookup),
		authz.NewContextService(time.Hour),
		authz.NewTokenService("secret"),
		nonceCookieName,
		5*time.Minute,
	)
}

func providerRequest(t *testing.T, target, provider string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("provider", provider)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func nonceCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == nonceCookieName {
			return c
		}
	}
	return nil
}

func TestAuthenticationList(t *testing.T) {
	h := newAuthentication(&fakeProvider{}, &stubLookup{})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/authentication", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"_links": {
			"self": {"href": "/authentication"},
			"providers": [{"href": "/authentication/stub", "name": "stub"}]
		}
	}`, rec.Body.String())
}

func TestAuthenticationStart(t *testing.T) {
	h := newAuthentication(&fakeProvider{}, &stubLookup{})

	rec := httptest.NewRecorder()
	h.Start(rec, providerRequest(t, "/authentication/stub", "stub"))

	require.Equal(t, http.StatusSeeOther, rec.Code)

	cookie := nonceCookie(t, rec)
	require.NotNil(t, cookie, "nonce cookie must be set")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/authentication", cookie.Path)

	assert.Equal(t, "http://provider.example.com/start/"+cookie.Value, rec.Header().Get("Location"))
}

func TestAuthenticationStartUnknownProvider(t *testing.T) {
	h := newAuthentication(&fakeProvider{}, &stubLookup{})

	rec := httptest.NewRecorder()
	h.Start(rec, providerRequest(t, "/authentication/nope", "nope"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthenticationComplete(t *testing.T) {
	user := &users.UserResource{Identity: users.NewIdentity()}
	h := newAuthentication(
		&fakeProvider{identity: &authn.ExternalIdentity{ID: "ext-1"}},
		&stubLookup{user: user},
	)

	req := providerRequest(t, "/authentication/stub/complete?state=n&code=c", "stub")
	req.AddCookie(&http.Cookie{Name: nonceCookieName, Value: "n"})

	rec := httptest.NewRecorder()
	h.Complete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := nonceCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge, "nonce cookie must be cleared")

	var body struct {
		TokenType   string    `json:"token_type"`
		AccessToken string    `json:"access_token"`
		Expires     time.Time `json:"expires"`
		Links       map[string]struct {
			Href string `json:"href"`
		} `json:"_links"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bearer", body.TokenType)
	assert.True(t, body.Expires.After(time.Now()))
	assert.Equal(t, "/users/"+user.Identity.ID.String(), body.Links["user"].Href)

	sc, err := authz.NewTokenService("secret").ValidateAccessToken(authz.AccessToken(body.AccessToken))
	require.NoError(t, err)
	assert.Equal(t, authz.User{UserID: user.Identity.ID.String()}, sc.Principal)
}

func TestAuthenticationCompleteWithoutCookie(t *testing.T) {
	h := newAuthentication(&fakeProvider{}, &stubLookup{})

	rec := httptest.NewRecorder()
	h.Complete(rec, providerRequest(t, "/authentication/stub/complete?state=n", "stub"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthenticationCompleteErrors(t *testing.T) {
	cases := []struct {
		name     string
		provider *fakeProvider
		lookup   *stubLookup
		id       string
		status   int
	}{
		{
			name:     "unknown provider",
			provider: &fakeProvider{},
			lookup:   &stubLookup{},
			id:       "nope",
			status:   http.StatusNotFound,
		},
		{
			name:     "forged state",
			provider: &fakeProvider{err: authn.ErrInvalidNonce},
			lookup:   &stubLookup{},
			id:       "stub",
			status:   http.StatusBadRequest,
		},
		{
			name:     "missing parameter",
			provider: &fakeProvider{err: authn.MissingParameterError{Name: "code"}},
			lookup:   &stubLookup{},
			id:       "stub",
			status:   http.StatusBadRequest,
		},
		{
			name:     "exchange failed",
			provider: &fakeProvider{err: authn.AuthenticationFailedError{Reason: "No subject in ID Token"}},
			lookup:   &stubLookup{},
			id:       "stub",
			status:   http.StatusBadRequest,
		},
		{
			name:     "no local user",
			provider: &fakeProvider{identity: &authn.ExternalIdentity{ID: "ext-1"}},
			lookup:   &stubLookup{err: users.ErrNotFound},
			id:       "stub",
			status:   http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newAuthentication(tc.provider, tc.lookup)

			req := providerRequest(t, "/authentication/"+tc.id+"/complete?state=n", tc.id)
			req.AddCookie(&http.Cookie{Name: nonceCookieName, Value: "n"})

			rec := httptest.NewRecorder()
			h.Complete(rec, req)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
