package profile

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when an entry does not exist or belongs
	// to a different owner.
	ErrNotFound = errors.New("profile entry not found")

	// ErrConflict is returned when an entry with the given ID (or a
	// skill with the same name) already exists.
	ErrConflict = errors.New("profile entry already exists")

	// ErrNoOwner is returned when an operation is attempted without an
	// owner in the context.
	ErrNoOwner = errors.New("no owner in context")
)
