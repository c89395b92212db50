package domain

import (
	"errors"
	"fmt"
)

// The lookup taxonomy. Every error a repository or service returns matches
// at most one of these with errors.Is; anything else is internal.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError names the entity that was looked up.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewQuoteNotFoundError reports that no quote has id.
func NewQuoteNotFoundError(id string) error {
	return NewNotFoundError("quote", id)
}

// ValidationError is malformed input: an id outside the store's format, a
// missing parameter or an invalid record in an import.
type ValidationError struct {
	Field   string
	Message string

	// Value is the rejected input, when it helps diagnosis.
	Value any
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError reports invalid input on field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue is NewValidationError keeping the rejected value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// NewMalformedIDError reports an id the store can never hold. It is a
// validation error and never reads as not found.
func NewMalformedIDError(id string) error {
	return NewValidationErrorWithValue("id", "malformed identifier", id)
}

// UnavailableError means the store could not answer. Service is safe to
// show to callers; Reason and Cause are for logs only.
type UnavailableError struct {
	Service string
	Reason  string
	Cause   error
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("service %q unavailable", e.Service)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap exposes ErrUnavailable and, when set, the underlying cause.
func (e *UnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUnavailable}
	}

	return []error{ErrUnavailable, e.Cause}
}

// NewUnavailableError reports that service could not answer.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// NewStoreUnavailableError is NewUnavailableError keeping the driver cause.
func NewStoreUnavailableError(service, reason string, cause error) error {
	return &UnavailableError{Service: service, Reason: reason, Cause: cause}
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
