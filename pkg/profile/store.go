package profile

import "context"

// Store is the owner-scoped persistence contract for career profiles.
// The owner identifier is taken from the context (see SetOwner); every
// method operates only on that owner's rows.
//
// List orderings: education by start year descending, experience by
// start date descending, skills by name ascending, projects by
// creation time descending.
type Store interface {
	ListEducation(ctx context.Context) ([]Education, error)
	InsertEducation(ctx context.Context, e *Education) error
	UpdateEducation(ctx context.Context, e *Education) error
	DeleteEducation(ctx context.Context, id string) error

	ListExperience(ctx context.Context) ([]Experience, error)
	InsertExperience(ctx context.Context, e *Experience) error
	UpdateExperience(ctx context.Context, e *Experience) error
	DeleteExperience(ctx context.Context, id string) error

	ListSkills(ctx context.Context) ([]Skill, error)
	InsertSkill(ctx context.Context, s *Skill) error
	DeleteSkill(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]Project, error)
	InsertProject(ctx context.Context, p *Project) error
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id string) error

	// GetUser returns the owner's user record, ErrNotFound when absent.
	GetUser(ctx context.Context) (*User, error)

	// UpsertUser creates or updates the owner's user record.
	UpsertUser(ctx context.Context, u *User) error

	// HealthCheck verifies the store connection is functional.
	HealthCheck(ctx context.Context) error

	// Close releases connections and resources.
	Close() error
}
