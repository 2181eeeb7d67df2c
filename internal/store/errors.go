package store

import "errors"

var (
	// ErrNotFound reports that the addressed row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation (duplicate username,
	// duplicate (name, release_year) show, or duplicate watch-history pair).
	ErrConflict = errors.New("conflict")
)
