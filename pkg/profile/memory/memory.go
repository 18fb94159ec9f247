// Package memory provides an in-memory implementation of profile.Store
// for testing and lightweight deployments. Entries are lost when the
// process restarts.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pathlight-ai/pathlight/pkg/profile"
)

// Store is an in-memory profile.Store.
type Store struct {
	mu         sync.RWMutex
	education  map[string]profile.Education
	experience map[string]profile.Experience
	skills     map[string]profile.Skill
	projects   map[string]profile.Project
	users      map[string]profile.User
}

// Ensure Store implements profile.Store at compile time.
var _ profile.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		education:  make(map[string]profile.Education),
		experience: make(map[string]profile.Experience),
		skills:     make(map[string]profile.Skill),
		projects:   make(map[string]profile.Project),
		users:      make(map[string]profile.User),
	}
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

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []profile.Education
	for _, e := range s.education {
		if e.Owner == o {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartYear > out[j].StartYear })
	return out, nil
}

func (s *Store) InsertEducation(ctx context.Context, e *profile.Education) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	} else if _, exists := s.education[e.ID]; exists {
		return profile.ErrConflict
	}
	e.Owner = o
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.education[e.ID] = *e
	return nil
}

func (s *Store) UpdateEducation(ctx context.Context, e *profile.Education) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.education[e.ID]
	if !ok || cur.Owner != o {
		return profile.ErrNotFound
	}
	e.Owner = o
	e.CreatedAt = cur.CreatedAt
	s.education[e.ID] = *e
	return nil
}

func (s *Store) DeleteEducation(ctx context.Context, id string) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.education[id]
	if !ok || cur.Owner != o {
		return profile.ErrNotFound
	}
	delete(s.education, id)
	return nil
}

// ListExperience returns the owner's experience entries ordered by
// start date descending (lexicographic on ISO dates).
func (s *Store) ListExperience(ctx context.Context) ([]profile.Experience, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []profile.Experience
	for _, e := range s.experience {
		if e.Owner == o {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	return out, nil
}

func (s *Store) InsertExperience(ctx context.Context, e *profile.Experience) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	} else if _, exists := s.experience[e.ID]; exists {
		return profile.ErrConflict
	}
	e.Owner = o
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.experience[e.ID] = *e
	return nil
}

func (s *Store) UpdateExperience(ctx context.Context, e *profile.Experience) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.experience[e.ID]
	if !ok || cur.Owner != o {
		return profile.ErrNotFound
	}
	e.Owner = o
	e.CreatedAt = cur.CreatedAt
	s.experience[e.ID] = *e
	return nil
}

func (s *Store) DeleteExperience(ctx context.Context, id string) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.experience[id]
	if !ok || cur.Owner != o {
		return profile.ErrNotFound
	}
	delete(s.experience, id)
	return nil
}

// ListSkills returns the owner's skills ordered by name.
func (s *Store) ListSkills(ctx context.Context) ([]profile.Skill, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []profile.Skill
	for _, sk := range s.skills {
		if sk.Owner == o {
			out = append(out, sk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// InsertSkill adds a skill. Skill names are unique per owner,
// case-insensitively; duplicates return ErrConflict.
func (s *Store) InsertSkill(ctx context.Context, sk *profile.Skill) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.skills {
		if existing.Owner == o && strings.EqualFold(existing.Name, sk.Name) {
			return profile.ErrConflict
		}
	}
	if sk.ID == "" {
		sk.ID = uuid.NewString()
	}
	sk.Owner = o
	if sk.CreatedAt.IsZero() {
		sk.CreatedAt = time.Now()
	}
	s.skills[sk.ID] = *sk
	return nil
}

func (s *Store) DeleteSkill(ctx context.Context, id string) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.skills[id]
	if !ok || cur.Owner != o {
		return profile.ErrNotFound
	}
	delete(s.skills, id)
	return nil
}

// ListProjects returns the owner's projects ordered by creation time
// descending.
func (s *Store) ListProjects(ctx context.Context) ([]profile.Project, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []profile.Project
	for _, p := range s.projects {
		if p.Owner == o {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) InsertProject(ctx context.Context, p *profile.Project) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	} else if _, exists := s.projects[p.ID]; exists {
		return profile.ErrConflict
	}
	p.Owner = o
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.projects[p.ID] = *p
	return nil
}

func (s *Store) UpdateProject(ctx context.Context, p *profile.Project) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[p.ID]
	if !ok || cur.Owner != o {
		return profile.ErrNotFound
	}
	p.Owner = o
	p.CreatedAt = cur.CreatedAt
	s.projects[p.ID] = *p
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[id]
	if !ok || cur.Owner != o {
		return profile.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

// GetUser returns the owner's user record.
func (s *Store) GetUser(ctx context.Context) (*profile.User, error) {
	o, err := owner(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[o]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return &u, nil
}

// UpsertUser creates or updates the owner's user record.
func (s *Store) UpsertUser(ctx context.Context, u *profile.User) error {
	o, err := owner(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = o
	now := time.Now()
	if cur, ok := s.users[o]; ok {
		u.CreatedAt = cur.CreatedAt
	} else if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	s.users[o] = *u
	return nil
}

// HealthCheck always succeeds for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }
