// Package http wires the routes, middlewares and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/hancock/internal/http/handlers"
	"github.com/dropDatabas3/hancock/internal/http/middlewares"
	"github.com/dropDatabas3/hancock/internal/http/problem"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Home           *handlers.Home
	Authentication *handlers.Authentication
	Users          *handlers.Users
	Health         *handlers.Health

	// Metrics is the /metrics handler from RegisterMetrics. Optional.
	Metrics http.Handler

	// UserAuth guards the user resource routes.
	UserAuth func(http.Handler) http.Handler
}

// NewRouter builds the chi router with the standard middleware chain.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middlewares.WithRequestID())
	r.Use(middlewares.WithLogging())
	r.Use(middlewares.WithRecover())
	r.Use(withMetrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		problem.Render(w, problem.NotFound())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		problem.Render(w, problem.New(http.StatusMethodNotAllowed, ""))
	})

	r.Get("/", deps.Home.Get)

	r.Route("/authentication", func(r chi.Router) {
		r.Get("/", deps.Authentication.List)
		r.Get("/{provider}", deps.Authentication.Start)
		r.Get("/{provider}/complete", deps.Authentication.Complete)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(deps.UserAuth)
		r.Get("/{id}", deps.Users.Get)
	})

	r.Get("/health", deps.Health.Get)

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	return r
}
