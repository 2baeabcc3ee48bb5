// Package problem renders errors as RFC 7807 application/problem+json.
package problem

import (
	"encoding/json"
	"net/http"
)

// Problem is the wire shape of an error response. Detail is optional and
// must never carry internal diagnostics.
type Problem struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func New(status int, detail string) Problem {
	return Problem{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

func BadRequest(detail string) Problem { return New(http.StatusBadRequest, detail) }

func Unauthorized() Problem { return New(http.StatusUnauthorized, "") }

func NotFound() Problem { return New(http.StatusNotFound, "") }

func Internal() Problem { return New(http.StatusInternalServerError, "") }

func ServiceUnavailable() Problem { return New(http.StatusServiceUnavailable, "") }

// Render writes p to w with the problem+json content type.
func Render(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}
