package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables the service needs if they do not exist.
// Bootstrap-on-start keeps a single source of truth for the schema; the
// statements are idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			active        BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS packages (
			id                 TEXT PRIMARY KEY,
			tracking_id        TEXT NOT NULL UNIQUE,
			user_id            TEXT NOT NULL REFERENCES users(id),
			sender             JSONB NOT NULL,
			receiver           JSONB NOT NULL,
			details            JSONB NOT NULL,
			service_type       TEXT NOT NULL,
			pickup_date        TEXT NOT NULL,
			distance_km        DOUBLE PRECISION NOT NULL,
			price              DOUBLE PRECISION NOT NULL,
			status             TEXT NOT NULL,
			created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
			estimated_delivery TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tracking_events (
			id          BIGSERIAL PRIMARY KEY,
			tracking_id TEXT NOT NULL,
			package_id  TEXT NOT NULL REFERENCES packages(id),
			status      TEXT NOT NULL,
			location    TEXT NOT NULL,
			notes       TEXT NOT NULL DEFAULT '',
			updated_by  TEXT NOT NULL DEFAULT '',
			ts          TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tracking_events_tracking_id
			ON tracking_events (tracking_id, ts)`,
		`CREATE INDEX IF NOT EXISTS idx_packages_user_id
			ON packages (user_id, created_at DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
