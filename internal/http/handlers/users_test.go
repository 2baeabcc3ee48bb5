package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hancock/internal/users"
)

type stubLookup struct {
	user *users.UserResource
	err  error
}

func (s *stubLookup) GetByID(context.Context, users.UserID) (*users.UserResource, error) {
	return s.user, s.err
}

func (s *stubLookup) GetByAuthentication(context.Context, users.AuthenticationService, users.AuthenticationID) (*users.UserResource, error) {
	return s.user, s.err
}

func requestWithParam(t *testing.T, target, key, value string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestUsersGetInvalidID(t *testing.T) {
	h := NewUsers(&stubLookup{})

	rec := httptest.NewRecorder()
	h.Get(rec, requestWithParam(t, "/users/garbage", "id", "garbage"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestUsersGetNotFound(t *testing.T) {
	h := NewUsers(&stubLookup{err: users.ErrNotFound})

	rec := httptest.NewRecorder()
	h.Get(rec, requestWithParam(t, "/users/x", "id", users.NewUserID().String()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsersGetLookupFailure(t *testing.T) {
	h := NewUsers(&stubLookup{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	h.Get(rec, requestWithParam(t, "/users/x", "id", users.NewUserID().String()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUsersGet(t *testing.T) {
	user := &users.UserResource{
		Identity: users.NewIdentity(),
		Data: users.UserData{
			DisplayName: "Alice Example",
			Email:       "alice@example.com",
			Authentications: []users.Authentication{
				{Service: "google", ID: "ext-1", DisplayName: "alice@example.com"},
			},
		},
	}
	h := NewUsers(&stubLookup{user: user})

	rec := httptest.NewRecorder()
	h.Get(rec, requestWithParam(t, "/users/x", "id", user.Identity.ID.String()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/hal+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprintf("%q", user.Identity.Version.String()), rec.Header().Get("ETag"))

	var body struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Email       string `json:"email"`
		Links       map[string]struct {
			Href string `json:"href"`
		} `json:"_links"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, user.Identity.ID.String(), body.ID)
	assert.Equal(t, "Alice Example", body.DisplayName)
	assert.Equal(t, "alice@example.com", body.Email)
	assert.Equal(t, "/users/"+user.Identity.ID.String(), body.Links["self"].Href)
}

func TestUsersGetNotModified(t *testing.T) {
	user := &users.UserResource{Identity: users.NewIdentity()}
	h := NewUsers(&stubLookup{user: user})

	req := requestWithParam(t, "/users/x", "id", user.Identity.ID.String())
	req.Header.Set("If-None-Match", fmt.Sprintf("%q", user.Identity.Version.String()))

	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}
