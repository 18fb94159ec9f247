// Package postgres provides a PostgreSQL implementation of
// profile.Store using pgx/v5 connection pooling. Every query is scoped
// by the owner identifier from the context.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pathlight-ai/pathlight/pkg/profile"
)

// Store is a PostgreSQL-backed profile.Store.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements profile.Store at compile time.
var _ profile.Store = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

func owner(ctx context.Context) (string, error) {
	o := profile.GetOwner(ctx)
	if o == "" {
		return "", profile.ErrNoOwner
	}
	return o, nil
}

// ListEducation returns the owner's education entries ordered by start
// year descending.
func (s *Store) ListEducation(ctx context.Context) ([]profile.Education, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, owner, institution, degree, field, start_year, end_year, created_at
		FROM education WHERE owner = $1
		ORDER BY start_year DESC, created_at DESC
	`, o)
	if err != nil {
		return nil, fmt.Errorf("querying education: %w", err)
	}
	defer rows.Close()

	var out []profile.Education
	for rows.Next() {
		var e profile.Education
		if err := rows.Scan(&e.ID, &e.Owner, &e.Institution, &e.Degree, &e.Field,
			&e.StartYear, &e.EndYear, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning education row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) InsertEducation(ctx context.Context, e *profile.Education) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Owner = o
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO education (id, owner, institution, degree, field, start_year, end_year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.Owner, e.Institution, e.Degree, e.Field, e.StartYear, e.EndYear, e.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return profile.ErrConflict
		}
		return fmt.Errorf("inserting education: %w", err)
	}
	return nil
}

func (s *Store) UpdateEducation(ctx context.Context, e *profile.Education) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE education
		SET institution = $3, degree = $4, field = $5, start_year = $6, end_year = $7
		WHERE id = $1 AND owner = $2
	`, e.ID, o, e.Institution, e.Degree, e.Field, e.StartYear, e.EndYear)
	if err != nil {
		return fmt.Errorf("updating education: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEducation(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "education", id)
}

// ListExperience returns the owner's experience entries ordered by
// start date descending.
func (s *Store) ListExperience(ctx context.Context) ([]profile.Experience, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, owner, company, title, description, start_date, end_date, created_at
		FROM experience WHERE owner = $1
		ORDER BY start_date DESC, created_at DESC
	`, o)
	if err != nil {
		return nil, fmt.Errorf("querying experience: %w", err)
	}
	defer rows.Close()

	var out []profile.Experience
	for rows.Next() {
		var e profile.Experience
		if err := rows.Scan(&e.ID, &e.Owner, &e.Company, &e.Title, &e.Description,
			&e.StartDate, &e.EndDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning experience row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) InsertExperience(ctx context.Context, e *profile.Experience) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Owner = o
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO experience (id, owner, company, title, description, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.Owner, e.Company, e.Title, e.Description, e.StartDate, e.EndDate, e.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return profile.ErrConflict
		}
		return fmt.Errorf("inserting experience: %w", err)
	}
	return nil
}

func (s *Store) UpdateExperience(ctx context.Context, e *profile.Experience) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE experience
		SET company = $3, title = $4, description = $5, start_date = $6, end_date = $7
		WHERE id = $1 AND owner = $2
	`, e.ID, o, e.Company, e.Title, e.Description, e.StartDate, e.EndDate)
	if err != nil {
		return fmt.Errorf("updating experience: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteExperience(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "experience", id)
}

// ListSkills returns the owner's skills ordered by name.
func (s *Store) ListSkills(ctx context.Context) ([]profile.Skill, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, owner, name, level, created_at
		FROM skills WHERE owner = $1
		ORDER BY lower(name)
	`, o)
	if err != nil {
		return nil, fmt.Errorf("querying skills: %w", err)
	}
	defer rows.Close()

	var out []profile.Skill
	for rows.Next() {
		var sk profile.Skill
		if err := rows.Scan(&sk.ID, &sk.Owner, &sk.Name, &sk.Level, &sk.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning skill row: %w", err)
		}
		out = append(out, sk)
	}
	return out, rows.Err()
}

// InsertSkill adds a skill. The owner+lower(name) unique index turns
// duplicates into ErrConflict.
func (s *Store) InsertSkill(ctx context.Context, sk *profile.Skill) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}
	if sk.ID == "" {
		sk.ID = uuid.NewString()
	}
	sk.Owner = o
	if sk.CreatedAt.IsZero() {
		sk.CreatedAt = time.Now()
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO skills (id, owner, name, level, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sk.ID, sk.Owner, sk.Name, sk.Level, sk.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return profile.ErrConflict
		}
		return fmt.Errorf("inserting skill: %w", err)
	}
	return nil
}

func (s *Store) DeleteSkill(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "skills", id)
}

// ListProjects returns the owner's projects ordered by creation time
// descending.
func (s *Store) ListProjects(ctx context.Context) ([]profile.Project, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, owner, name, description, url, created_at
		FROM projects WHERE owner = $1
		ORDER BY created_at DESC
	`, o)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var out []profile.Project
	for rows.Next() {
		var p profile.Project
		if err := rows.Scan(&p.ID, &p.Owner, &p.Name, &p.Description, &p.URL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) InsertProject(ctx context.Context, p *profile.Project) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Owner = o
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO projects (id, owner, name, description, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Owner, p.Name, p.Description, p.URL, p.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return profile.ErrConflict
		}
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (s *Store) UpdateProject(ctx context.Context, p *profile.Project) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE projects
		SET name = $3, description = $4, url = $5
		WHERE id = $1 AND owner = $2
	`, p.ID, o, p.Name, p.Description, p.URL)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "projects", id)
}

// GetUser returns the owner's user record.
func (s *Store) GetUser(ctx context.Context) (*profile.User, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	var u profile.User
	err = s.pool.QueryRow(ctx, `
		SELECT id, email, full_name, headline, created_at, updated_at
		FROM users WHERE id = $1
	`, o).Scan(&u.ID, &u.Email, &u.FullName, &u.Headline, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, profile.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// UpsertUser creates or updates the owner's user record.
func (s *Store) UpsertUser(ctx context.Context, u *profile.User) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}
	u.ID = o

	_, err = s.pool.Exec(ctx, `
		INSERT INTO users (id, email, full_name, headline)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email, full_name = EXCLUDED.full_name,
		    headline = EXCLUDED.headline, updated_at = now()
	`, u.ID, u.Email, u.FullName, u.Headline)
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// deleteByID removes one owner-scoped row from the named table.
// The table name is always one of the fixed entity tables.
func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND owner = $2", table), id, o)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

// isDuplicateKey checks if the error is a PostgreSQL unique violation (23505).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
