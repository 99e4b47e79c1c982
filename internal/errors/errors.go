// Package errors provides consistent error types for the Trackedit CLI.
// It defines two main categories: UserError (fixable by user) and
// SystemError (storage or environment issues), plus the sentinel errors the
// CLI reports on.
package errors

import (
	"errors"
	"fmt"

	"github.com/manav03panchal/trackedit/internal/document"
	"github.com/manav03panchal/trackedit/internal/history"
	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/storage"
	"github.com/manav03panchal/trackedit/internal/undo"
)

// Standard sentinel errors for common conditions. Those owned by a domain
// package are re-exported here so callers match on a single set.
var (
	ErrTrackNotFound     = errors.New("track not found")
	ErrInvalidTrackID    = errors.New("invalid track ID")
	ErrInvalidName       = errors.New("invalid track name")
	ErrInvalidInstrument = errors.New("invalid instrument ID")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrDiskFull          = errors.New("disk full")

	ErrInvalidColour  = model.ErrInvalidColour
	ErrDuplicateTrack = document.ErrDuplicateTrack
	ErrNothingToUndo  = history.ErrNothingToUndo
	ErrNothingToRedo  = history.ErrNothingToRedo
	ErrActionFailed   = history.ErrActionFailed
	ErrUnknownKind    = undo.ErrUnknownKind
	ErrLockHeld       = storage.ErrLocked
)

// UserError represents an error that the user can fix.
// Examples: invalid input, unknown track, nothing left to undo.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
	Cause      error  // The sentinel or underlying error (optional)
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Field != "" && e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewUserErrorWithField creates a new UserError with field context.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
	}
}

// UserErrorFrom turns a known sentinel into a UserError carrying its
// registered suggestion. The sentinel stays matchable with errors.Is.
func UserErrorFrom(err error, value string) *UserError {
	return &UserError{
		Message:    err.Error(),
		Value:      value,
		Field:      "value",
		Suggestion: GetSuggestion(err),
		Cause:      err,
	}
}

// SystemError represents a system-level error that the user cannot directly fix.
// Examples: database locked, disk full, unreadable config.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *SystemError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	return e.Message
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a new SystemError.
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
	}
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
		Op:      op,
	}
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// AsSystemError extracts a SystemError from an error chain.
func AsSystemError(err error) (*SystemError, bool) {
	var se *SystemError
	ok := errors.As(err, &se)
	return se, ok
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
