package service

import (
	"errors"
	"fmt"
)

var (
	ErrNoData             = errors.New("no sensor readings recorded for this plant")
	ErrForbidden          = errors.New("operation is only available in debug mode")
	ErrTicketNotFound     = errors.New("purge ticket not found or expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidOperatorKey = errors.New("invalid operator key")
)

// ValidationError is returned for missing or out-of-range input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func validatePercent(field string, v int) error {
	if v < 0 || v > 100 {
		return newValidationError(field, "must be between 0 and 100, got %d", v)
	}
	return nil
}
