package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the lookup key.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)
