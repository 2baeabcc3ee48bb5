package handlers

import (
	"net/http"

	"github.com/dropDatabas3/hancock/internal/http/hal"
)

// Home serves the API entry point: a HAL document whose links point at the
// other surfaces, so clients can navigate without hardcoded paths.
type Home struct{}

func NewHome() *Home { return &Home{} }

func (h *Home) Get(w http.ResponseWriter, r *http.Request) {
	doc := hal.NewDocument(nil).
		WithLink("self", hal.Link{Href: "/"}).
		WithLink("authentication", hal.Link{Href: "/authentication"}).
		WithLink("health", hal.Link{Href: "/health"})

	writeHAL(w, r, http.StatusOK, doc)
}
