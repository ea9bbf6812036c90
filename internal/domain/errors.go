package domain

import "errors"

var (
	// ErrNotFound is returned when a session or memory fact identifier does
	// not resolve. Lookup failures are surfaced to the caller, never
	// silently ignored.
	ErrNotFound = errors.New("not found")

	// ErrInvalidMode is returned for a mode outside the known enumeration.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrEmptyInput marks a blank submission. Absorbed at the boundary;
	// it never reaches a mutating operation.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnauthenticated marks a submission while logged out. Absorbed at
	// the boundary like ErrEmptyInput.
	ErrUnauthenticated = errors.New("unauthenticated")
)
