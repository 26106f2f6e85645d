package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrAuthRequired indicates an operation was attempted without a user identity.
var ErrAuthRequired = errors.New("user identity required")

// ErrInterviewNotFound indicates the requested interview does not exist for the user.
type ErrInterviewNotFound struct {
	InterviewID uuid.UUID
}

func (e *ErrInterviewNotFound) Error() string {
	return fmt.Sprintf("interview not found: %s", e.InterviewID)
}

// ErrInvalidSection indicates a resume section name outside the allowed set.
type ErrInvalidSection struct {
	Section string
}

func (e *ErrInvalidSection) Error() string {
	return fmt.Sprintf("invalid resume section: %q", e.Section)
}

// ErrUnavailable wraps a backend failure so callers can distinguish
// transient store problems from domain errors.
type ErrUnavailable struct {
	Op  string
	Err error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *ErrUnavailable) Unwrap() error {
	return e.Err
}
