package postgres

import (
	"context"
	"fmt"
	"log/slog"
)

// migrations are applied in order; each entry runs at most once,
// tracked in the schema_migrations table.
var migrations = []struct {
	version int
	sql     string
}{
	{1, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE users (
			id         TEXT PRIMARY KEY,
			email      TEXT NOT NULL,
			full_name  TEXT NOT NULL DEFAULT '',
			headline   TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE education (
			id          TEXT PRIMARY KEY,
			owner       TEXT NOT NULL,
			institution TEXT NOT NULL,
			degree      TEXT NOT NULL,
			field       TEXT NOT NULL DEFAULT '',
			start_year  INTEGER NOT NULL DEFAULT 0,
			end_year    INTEGER NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX education_owner_idx ON education (owner, start_year DESC);

		CREATE TABLE experience (
			id          TEXT PRIMARY KEY,
			owner       TEXT NOT NULL,
			company     TEXT NOT NULL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_date  TEXT NOT NULL DEFAULT '',
			end_date    TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX experience_owner_idx ON experience (owner, start_date DESC);

		CREATE TABLE skills (
			id         TEXT PRIMARY KEY,
			owner      TEXT NOT NULL,
			name       TEXT NOT NULL,
			level      TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE UNIQUE INDEX skills_owner_name_idx ON skills (owner, lower(name));

		CREATE TABLE projects (
			id          TEXT PRIMARY KEY,
			owner       TEXT NOT NULL,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			url         TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX projects_owner_idx ON projects (owner, created_at DESC);
	`},
}

// migrate applies pending schema migrations in order, tracking applied
// versions in the schema_migrations table.
func (s *Store) migrate(ctx context.Context) error {
	for _, m := range migrations {
		var exists bool
		err := s.pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
			m.version,
		).Scan(&exists)
		// schema_migrations does not exist before the first migration
		// runs; treat the lookup failure as not-applied.
		if err != nil {
			exists = false
		}
		if exists {
			continue
		}

		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", m.version, err)
		}

		if _, err := tx.Exec(ctx, m.sql); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("applying migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)", m.version,
		); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.version, err)
		}

		slog.Info("applied schema migration", "version", m.version)
	}

	return nil
}
