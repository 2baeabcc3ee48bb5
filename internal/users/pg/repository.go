// Package pg is the Postgres implementation of the users lookup.
package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/hancock/internal/users"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectUser = `
	SELECT user_id, version, created, updated, email, display_name, authentications
	FROM users
`

func (r *Repository) GetByID(ctx context.Context, id users.UserID) (*users.UserResource, error) {
	row := r.pool.QueryRow(ctx, selectUser+`WHERE user_id = $1`, id.String())
	return scanUser(row)
}

func (r *Repository) GetByAuthentication(ctx context.Context, service users.AuthenticationService, id users.AuthenticationID) (*users.UserResource, error) {
	// jsonb containment against the authentications array.
	match, err := json.Marshal([]map[string]string{{
		"service": string(service),
		"id":      string(id),
	}})
	if err != nil {
		return nil, fmt.Errorf("marshal authentication match: %w", err)
	}

	row := r.pool.QueryRow(ctx, selectUser+`WHERE authentications @> $1::jsonb`, string(match))
	return scanUser(row)
}

func scanUser(row pgx.Row) (*users.UserResource, error) {
	var (
		u     users.UserResource
		rawID string
		email string
		auths []byte
	)
	err := row.Scan(&rawID, &u.Identity.Version, &u.Identity.Created, &u.Identity.Updated,
		&email, &u.Data.DisplayName, &auths)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, users.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if u.Identity.ID, err = users.ParseUserID(rawID); err != nil {
		return nil, fmt.Errorf("stored user id: %w", err)
	}
	if u.Data.Email, err = users.ParseEmail(email); err != nil {
		return nil, fmt.Errorf("stored email: %w", err)
	}
	if err := json.Unmarshal(auths, &u.Data.Authentications); err != nil {
		return nil, fmt.Errorf("decode authentications: %w", err)
	}
	return &u, nil
}
