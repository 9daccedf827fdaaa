package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("batch cannot be empty")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateEntries checks a write batch before any of it is applied.
func validateEntries(entries map[string][]byte) error {
	if len(entries) == 0 {
		return ErrEmptySlice
	}
	for k, v := range entries {
		if err := validateString(k, "key"); err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("%w: value for %q", ErrNilParameter, k)
		}
	}
	return nil
}
