package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// AlreadyExistsError is returned when a record with the same id was already created.
type AlreadyExistsError struct {
	Kind string
	ID   uuid.UUID
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with id %v already exists", e.Kind, e.ID)
}

// NotFoundError is returned for missing records and, at the boundary, for records
// the caller is not allowed to see.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %v not found", e.Kind, e.ID)
}

// InvalidReferenceError is returned when a record points at a record that does not exist.
type InvalidReferenceError struct {
	Kind string
	ID   uuid.UUID
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("referenced %s with id %v does not exist", e.Kind, e.ID)
}

// StoreError wraps any persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IdentityError means the verified claims could not be turned into a caller identity.
type IdentityError struct {
	Reason string
}

func (e *IdentityError) Error() string {
	return "identity: " + e.Reason
}

// ErrorKind names the failure class of err for metrics and logs.
func ErrorKind(err error) string {
	var (
		exists  *AlreadyExistsError
		missing *NotFoundError
		ref     *InvalidReferenceError
		ident   *IdentityError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &exists):
		return "already_exists"
	case errors.As(err, &missing):
		return "not_found"
	case errors.As(err, &ref):
		return "invalid_reference"
	case errors.As(err, &ident):
		return "identity_error"
	default:
		return "store_error"
	}
}
