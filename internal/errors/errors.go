// Package errors provides custom error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Auth errors
var (
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrForbidden       = errors.New("you do not have permission to perform this action")
)

// Team errors
var (
	ErrTeamNotFound            = errors.New("team not found")
	ErrTeamFull                = errors.New("team already has the maximum of 5 members")
	ErrTeamAlreadyRegistered   = errors.New("you have already registered a team")
	ErrInvalidStatusTransition = errors.New("payment status can only change while pending")
	ErrRegistrationInProgress  = errors.New("a registration for one of these emails is already in progress, please try again")
)

// Member errors
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrMissingFields  = errors.New("missing required member fields")
)

// Issue is a single validation problem tied to a field path such as
// "members.0.rollNo".
type Issue struct {
	Path    string `json:"path" example:"members.0.rollNo"`
	Message string `json:"message" example:"Roll number is required for the team leader"`
}

// ValidationError carries the ordered list of issues found in a payload.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	first := e.Issues[0]
	if len(e.Issues) == 1 {
		return fmt.Sprintf("%s: %s", first.Path, first.Message)
	}
	return fmt.Sprintf("%s: %s (and %d more)", first.Path, first.Message, len(e.Issues)-1)
}

// NewValidationError wraps issues in a ValidationError.
func NewValidationError(issues []Issue) *ValidationError {
	return &ValidationError{Issues: issues}
}

// DuplicateMemberError is returned when an email already belongs to a team.
type DuplicateMemberError struct {
	Email string
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("%s is already registered with a team", e.Email)
}

// StorageError wraps a failed receipt upload.
type StorageError struct {
	Cause error
}

func (e *StorageError) Error() string {
	return "failed to upload payment receipt: " + e.Cause.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// PersistenceError wraps a failed database write. Op names the step that failed.
// The cause is surfaced to callers on purpose, this is an internal tool.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// IsDuplicateMember reports whether err is a DuplicateMemberError and returns it.
func IsDuplicateMember(err error) (*DuplicateMemberError, bool) {
	var dup *DuplicateMemberError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
