package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProfileNotFound indicates an analyzer key with no registered profile.
	// Callers that did not request fallback parsing must treat this as a
	// configuration error: parsing rules for the analyzer do not exist.
	ErrProfileNotFound = errors.New("analyzer profile not found")

	// ErrInvalidInput indicates malformed or missing input, such as an
	// extraction request that selects no page text at all. This is an
	// upstream collaborator failure, not a parse outcome.
	ErrInvalidInput = errors.New("invalid input")
)
