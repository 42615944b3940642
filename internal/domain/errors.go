package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced id or QR token does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrConflict means the write would break a placement invariant or a
	// uniqueness constraint.
	ErrConflict = errors.New("conflict")
	// ErrTokenExhausted means no unused QR token was found within the retry
	// budget.
	ErrTokenExhausted = errors.New("qr token generation exhausted")
)

// NotFound builds an ErrNotFound naming the missing entity.
func NotFound(entity string, key any) error {
	return fmt.Errorf("%s %v: %w", entity, key, ErrNotFound)
}

// Invalid builds an ErrValidation with a human readable reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
