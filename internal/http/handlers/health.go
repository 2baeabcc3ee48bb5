package handlers

import (
	"net/http"

	"github.com/dropDatabas3/hancock/internal/health"
)

// Health exposes the aggregate system health.
type Health struct {
	service *health.Service
}

func NewHealth(service *health.Service) *Health {
	return &Health{service: service}
}

type componentPayload struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

type healthPayload struct {
	Healthy    bool                        `json:"healthy"`
	Components map[string]componentPayload `json:"components"`
}

// Get runs all checks and answers 200 or 503 depending on the outcome.
// The body carries per-component results either way.
func (h *Health) Get(w http.ResponseWriter, r *http.Request) {
	system := h.service.CheckHealth(r.Context())

	body := healthPayload{
		Healthy:    system.Healthy(),
		Components: make(map[string]componentPayload, len(system.Components)),
	}
	for name, c := range system.Components {
		body.Components[name] = componentPayload{Healthy: c.Healthy, Message: c.Message}
	}

	status := http.StatusOK
	if !body.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, r, status, body)
}
