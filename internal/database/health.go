package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthCheck reports database connectivity for the health endpoint.
type HealthCheck struct {
	pool *pgxpool.Pool
}

func NewHealthCheck(pool *pgxpool.Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) CheckHealth(ctx context.Context) error {
	return h.pool.Ping(ctx)
}
