// Package handlers holds the HTTP endpoint implementations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dropDatabas3/hancock/internal/http/hal"
	"github.com/dropDatabas3/hancock/internal/observability/logger"
)

func writeHAL(w http.ResponseWriter, r *http.Request, status int, doc *hal.Document) {
	w.Header().Set("Content-Type", "application/hal+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		logger.From(r.Context()).Error("failed to write response", logger.Err(err))
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.From(r.Context()).Error("failed to write response", logger.Err(err))
	}
}
