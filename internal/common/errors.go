// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrValidation marks input rejected at a write entry point. Nothing was changed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a reference to an entity that no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrImportFormat marks a malformed interchange payload. Nothing was imported.
	ErrImportFormat = errors.New("invalid import format")

	// Category errors.
	ErrDuplicateCategory = fmt.Errorf("%w: duplicate category", ErrValidation)
	ErrNotRemovable      = fmt.Errorf("%w: default category cannot be removed", ErrValidation)

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Validationf returns an error wrapping ErrValidation with a formatted reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err was caused by rejected input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
