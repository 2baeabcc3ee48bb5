package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/hancock/internal/http/hal"
	"github.com/dropDatabas3/hancock/internal/http/problem"
	"github.com/dropDatabas3/hancock/internal/observability/logger"
	"github.com/dropDatabas3/hancock/internal/users"
)

// Users serves user resources.
type Users struct {
	lookup users.Lookup
}

func NewUsers(lookup users.Lookup) *Users {
	return &Users{lookup: lookup}
}

type userPayload struct {
	ID              string                 `json:"id"`
	Created         time.Time              `json:"created"`
	Updated         time.Time              `json:"updated"`
	DisplayName     string                 `json:"displayName"`
	Email           string                 `json:"email"`
	Authentications []users.Authentication `json:"authentications"`
}

// Get answers with the user's HAL document. The resource version doubles
// as the ETag so conditional requests short-circuit to 304.
func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	id, err := users.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		problem.Render(w, problem.BadRequest("invalid user id"))
		return
	}

	user, err := h.lookup.GetByID(r.Context(), id)
	if errors.Is(err, users.ErrNotFound) {
		problem.Render(w, problem.NotFound())
		return
	}
	if err != nil {
		logger.From(r.Context()).Error("user lookup failed", logger.Err(err), logger.UserID(id.String()))
		problem.Render(w, problem.Internal())
		return
	}

	etag := fmt.Sprintf("%q", user.Identity.Version.String())
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, no-cache")

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	doc := hal.NewDocument(userPayload{
		ID:              user.Identity.ID.String(),
		Created:         user.Identity.Created,
		Updated:         user.Identity.Updated,
		DisplayName:     user.Data.DisplayName,
		Email:           string(user.Data.Email),
		Authentications: user.Data.Authentications,
	}).WithLink("self", hal.Link{Href: fmt.Sprintf("/users/%s", user.Identity.ID)})

	writeHAL(w, r, http.StatusOK, doc)
}
