package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidLocation = errors.New("invalid location")
	ErrPolicyViolation = errors.New("policy violation")
	ErrForbidden       = errors.New("forbidden")
)

// Error is a user-correctable failure. Kind is one of the Err* sentinels.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// InvalidLocationError is returned by CheckIn after an INVALID_LOCATION record was persisted.
type InvalidLocationError struct {
	RecordID      uuid.UUID
	Distance      float64
	AllowedRadius float64
}

func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("check-in location is %.0fm from the office, outside the allowed radius of %.0fm", e.Distance, e.AllowedRadius)
}

func (e *InvalidLocationError) Unwrap() error {
	return ErrInvalidLocation
}
