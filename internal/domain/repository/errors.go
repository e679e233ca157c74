package repository

import "errors"

// Error taxonomy shared by all repositories. Handlers map these to HTTP codes.
var (
	// ErrNotFound means the target row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("conflict")
	// ErrInvalidReference means a foreign key points at a missing row.
	ErrInvalidReference = errors.New("invalid reference")
)
