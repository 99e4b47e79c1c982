package errors

import (
	"errors"
	"io/fs"
	"syscall"
)

// Category represents the type of error for display and handling purposes.
type Category int

const (
	// CategoryUnknown is the default for unclassified errors.
	CategoryUnknown Category = iota
	// CategoryUser indicates an error the user can fix (bad input, missing track).
	CategoryUser
	// CategorySystem indicates a system-level error (disk full, database locked).
	CategorySystem
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Exit codes returned by the CLI per category.
const (
	ExitOK      = 0
	ExitUnknown = 1
	ExitUser    = 2
	ExitSystem  = 3
)

// userSentinels are errors caused by input rather than the environment.
var userSentinels = []error{
	ErrTrackNotFound,
	ErrInvalidTrackID,
	ErrInvalidName,
	ErrInvalidInstrument,
	ErrInvalidTimestamp,
	ErrInvalidFormat,
	ErrInvalidColour,
	ErrDuplicateTrack,
	ErrNothingToUndo,
	ErrNothingToRedo,
	ErrActionFailed,
	ErrUnknownKind,
}

// Classify determines the category of an error.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	// Check for our typed errors first
	if IsUserError(err) {
		return CategoryUser
	}
	if IsSystemError(err) {
		return CategorySystem
	}

	for _, sentinel := range userSentinels {
		if errors.Is(err, sentinel) {
			return CategoryUser
		}
	}

	if isSystemLevel(err) {
		return CategorySystem
	}

	return CategoryUnknown
}

// isSystemLevel checks if an error is a system-level error.
func isSystemLevel(err error) bool {
	if errors.Is(err, ErrLockHeld) || errors.Is(err, ErrDiskFull) || errors.Is(err, fs.ErrPermission) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOSPC, syscall.EACCES, syscall.EPERM, syscall.EIO, syscall.EROFS:
			return true
		}
	}
	return false
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch Classify(err) {
	case CategoryUser:
		return ExitUser
	case CategorySystem:
		return ExitSystem
	default:
		return ExitUnknown
	}
}
