// Package postgres implements the repositories on PostgreSQL via lib/pq.
// Workflow columns are typed so guarded updates can filter on them; listing
// content is kept as JSONB.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS submissions (
		id                TEXT PRIMARY KEY,
		owner_uid         TEXT NOT NULL,
		status            TEXT NOT NULL,
		paid              BOOLEAN NOT NULL DEFAULT FALSE,
		payment_reference TEXT NOT NULL DEFAULT '',
		restaurant_id     TEXT NOT NULL DEFAULT '',
		reject_reason     TEXT NOT NULL DEFAULT '',
		content           JSONB NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS submissions_status_updated ON submissions (status, updated_at)`,
	`CREATE TABLE IF NOT EXISTS restaurants (
		id            TEXT PRIMARY KEY,
		submission_id TEXT NOT NULL UNIQUE,
		owner_uid     TEXT NOT NULL,
		lat           DOUBLE PRECISION NOT NULL,
		lng           DOUBLE PRECISION NOT NULL,
		content       JSONB NOT NULL,
		rating_avg    DOUBLE PRECISION NOT NULL DEFAULT 0,
		rating_count  INTEGER NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id            TEXT PRIMARY KEY,
		restaurant_id TEXT NOT NULL REFERENCES restaurants (id) ON DELETE CASCADE,
		uid           TEXT NOT NULL,
		display_name  TEXT NOT NULL,
		rating        INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		body          TEXT NOT NULL DEFAULT '',
		photos        JSONB NOT NULL DEFAULT '[]',
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS reviews_restaurant_created ON reviews (restaurant_id, created_at DESC)`,
}

// Migrate creates the tables and indexes if they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
