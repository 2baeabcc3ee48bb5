// Package health aggregates component health checks into a system view.
package health

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Checker is implemented by any component that can report its own health.
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// ComponentHealth is the health of one component.
type ComponentHealth struct {
	Healthy bool
	Message string
}

// SystemHealth is the health of every registered component.
type SystemHealth struct {
	Components map[string]ComponentHealth
}

// Healthy reports whether the whole system is healthy: true if and only if
// every component is. A system with no components is healthy.
func (s SystemHealth) Healthy() bool {
	for _, c := range s.Components {
		if !c.Healthy {
			return false
		}
	}
	return true
}

// Service runs the registered checks.
type Service struct {
	components map[string]Checker
}

func NewService(components map[string]Checker) *Service {
	return &Service{components: components}
}

// CheckHealth runs every component check in parallel. A check failure is a
// result, not an error, so the group never short-circuits.
func (s *Service) CheckHealth(ctx context.Context) SystemHealth {
	var (
		mu      sync.Mutex
		results = make(map[string]ComponentHealth, len(s.components))
	)

	g, ctx := errgroup.WithContext(ctx)
	for name, checker := range s.components {
		name, checker := name, checker
		g.Go(func() error {
			var component ComponentHealth
			if err := checker.CheckHealth(ctx); err != nil {
				component = ComponentHealth{Healthy: false, Message: err.Error()}
			} else {
				component = ComponentHealth{Healthy: true}
			}
			mu.Lock()
			results[name] = component
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return SystemHealth{Components: results}
}
