package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup, including
	// deletes scoped to a different owner.
	ErrNotFound = errors.New("url not found")

	// ErrCodeTaken is returned when an insert hits the short_code unique
	// constraint.
	ErrCodeTaken = errors.New("short code already taken")
)
