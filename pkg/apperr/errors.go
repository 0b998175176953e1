// Package apperr holds the error taxonomy shared by the form, the backend
// clients and the mock backend. Check categories with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrValidation    = errors.New("validation failed")
	ErrFetch         = errors.New("reference data fetch failed")
	ErrSubmission    = errors.New("submission failed")
	ErrNotFound      = errors.New("record not found")
	ErrDatabase      = errors.New("database operation failed")
)

// ValidationError carries the per-field problems of a rejected record.
// Fields maps the wire name of a field to a short reason.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = ErrValidation.Error()
	}
	if len(e.Fields) == 0 {
		return msg
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return msg + " (" + strings.Join(parts, ", ") + ")"
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FetchError reports a failed read of one reference list.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// SubmissionError wraps whatever broke between a valid record and an
// accepted submission: payload assembly, transport or a non-2xx answer.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string { return "submit plataform: " + e.Err.Error() }

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) Is(target error) bool { return target == ErrSubmission }

// Wrapf prefixes err with a formatted message and keeps it matchable.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return fmt.Errorf(format, args...)
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
