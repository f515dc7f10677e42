package domain

import "errors"

// Sentinel errors shared across repositories and services. Repositories map
// store-level conditions (sql.ErrNoRows, pq unique violations) onto these;
// any other backend failure is wrapped and propagated unchanged.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness constraint is violated,
	// e.g. a duplicate application or a second brand profile for a user.
	ErrConflict = errors.New("already exists")

	// ErrForbidden is returned when a non-admin actor invokes an admin-only
	// mutation, or a caller touches a row they do not own.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when the request is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition is returned when a status update would move a
	// resolved application or proposal out of its terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidCredentials is returned on a failed password sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
