// Package common defines the sentinel errors shared by the store, the
// integration adapters and the HTTP layer. Callers match them with errors.Is.
package common

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Store lookups for ids that do not exist.
	ErrNotFound = errors.New("not found")

	// Malformed or missing input. Usually carried by *ValidationError.
	ErrValidation = errors.New("validation error")

	// Required credentials (GHIN client id/secret) are absent.
	ErrNotConfigured = errors.New("not configured")

	// The handicap service rejected our tokens even after a refresh.
	ErrAuthFailed = errors.New("authentication failed")

	// A third-party service was unreachable or answered with an unexpected shape.
	ErrUpstream = errors.New("upstream error")
)

// ValidationError reports bad input with optional per-field messages.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError for a single field.
func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Message: "validation failed", Fields: map[string]string{field: msg}}
}
