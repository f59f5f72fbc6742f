package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionPG keeps session fields in Postgres, one row per (profile, key). Several
// profiles can share a database, e.g. on a shared kiosk.
type SessionPG struct {
	db      *pgxpool.Pool
	profile string
}

func NewSessionPG(db *pgxpool.Pool, profile string) *SessionPG {
	if profile == "" {
		profile = "default"
	}
	return &SessionPG{db: db, profile: profile}
}

func (r *SessionPG) Get(ctx context.Context, key string) (string, error) {
	const query = `
	SELECT value
	FROM storefront_sessions
	WHERE profile = $1 AND key = $2
	`
	var value string
	err := r.db.QueryRow(ctx, query, r.profile, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r *SessionPG) Set(ctx context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	const query = `
	INSERT INTO storefront_sessions (profile, key, value)
	VALUES ($1, $2, $3)
	ON CONFLICT (profile, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	_, err := r.db.Exec(ctx, query, r.profile, key, value)
	return err
}

func (r *SessionPG) Remove(ctx context.Context, key string) error {
	const query = `DELETE FROM storefront_sessions WHERE profile = $1 AND key = $2`
	_, err := r.db.Exec(ctx, query, r.profile, key)
	return err
}
