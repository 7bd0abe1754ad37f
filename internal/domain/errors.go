// Package domain defines the core business entities and errors.
package domain

import "errors"

// Error categories shared by every component. Component-specific errors wrap
// one of these so callers can classify with errors.Is.
var (
	// ErrNotFound is returned when an operation references an unknown id
	// (trade, card, skill, achievement).
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when an operation is not permitted in the
	// entity's current state, e.g. closing an already-closed trade or
	// completing a locked skill.
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation is returned when an entity or input fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")
)
