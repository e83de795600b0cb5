package domain

import (
	"errors"
	"fmt"
)

// Error classes surfaced to callers
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrConflict         = errors.New("conflict")
	ErrUpstream         = errors.New("upstream failure")
	ErrLocationRequired = errors.New("location required")
)

// FieldError names the request field that failed validation
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// Invalid builds a FieldError
func Invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// NotFoundError names the missing entity
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Missing builds a NotFoundError
func Missing(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Upstream wraps a scorer failure
func Upstream(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
