package store

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("requested record not found")

	// ErrMalformedSnapshot is returned when a snapshot blob fails to parse
	// at the root level. A malformed import never touches existing state.
	ErrMalformedSnapshot = errors.New("snapshot is malformed")
)
