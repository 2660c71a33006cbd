package core

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both a genuinely absent row and an ownership mismatch.
// The two are indistinguishable on purpose so that probing another user's
// ids leaks nothing about their existence.
var ErrNotFound = errors.New("not found")

// ValidationError marks malformed or missing input. It is raised before any
// store interaction and maps to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError marks a state clash the caller can resolve, currently only
// the duplicate budget category case. Maps to HTTP 400 with its message.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ErrDuplicateBudget is returned when a budget already exists for the
// owner's category.
var ErrDuplicateBudget = &ConflictError{Message: "Budget already exists for this category"}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
