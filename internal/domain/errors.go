package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation signals a payload that fails domain validation.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidField signals a field name outside the field registry.
	ErrInvalidField = errors.New("invalid field")
	// ErrAlreadyReviewed signals a moderation decision on a submission that is no longer pending.
	ErrAlreadyReviewed = errors.New("submission already reviewed")
	// ErrForbidden signals an actor acting on a resource it does not own.
	ErrForbidden = errors.New("forbidden")
	// ErrPartialBatch signals a bulk write where some items failed.
	ErrPartialBatch = errors.New("partial batch failure")
)

// ValidationError lists the required fields missing from a payload.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if len(e.Missing) > 0 {
		b.WriteString(": missing required fields: ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewMissingFields creates a validation error for absent required fields.
func NewMissingFields(fields ...string) error {
	return &ValidationError{Missing: fields}
}

// NewInvalid creates a validation error with a free-form reason.
func NewInvalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InvalidFieldError names the rejected field.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidField.Error(), e.Field)
}

func (e *InvalidFieldError) Unwrap() error { return ErrInvalidField }

// NewInvalidField creates an invalid field error.
func NewInvalidField(name string) error {
	return &InvalidFieldError{Field: name}
}

// PartialBatchError reports a best-effort bulk write. Inserted items are not rolled back.
type PartialBatchError struct {
	Inserted int
	Failed   int
	Errors   []string
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("%s: %d inserted, %d failed", ErrPartialBatch.Error(), e.Inserted, e.Failed)
}

func (e *PartialBatchError) Unwrap() error { return ErrPartialBatch }
