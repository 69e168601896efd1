package domain

import "errors"

// Sentinel errors shared by repositories, services and controllers.
var (
	// ErrNotFound is returned when the requested invitation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when the database rejects a value.
	ErrInvalidInput = errors.New("invalid input")
)
