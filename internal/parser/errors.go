package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/trackedit/internal/errors"
)

// TimeParseError represents a time parsing error with helpful suggestions.
type TimeParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
	Cause      error
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// Unwrap exposes ErrInvalidTimestamp so callers can match on it.
func (e *TimeParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{errors.ErrInvalidTimestamp}
	}
	return []error{errors.ErrInvalidTimestamp, e.Cause}
}

// FormatWithExamples returns the error message with example suggestions.
func (e *TimeParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// TimestampExamples provides example timestamp formats.
var TimestampExamples = []string{
	"2 hours ago",
	"yesterday",
	"this week",
	"last month",
	"2026-01-02",
	"monday 9am",
}

// NewTimestampError creates a timestamp parse error with standard examples.
func NewTimestampError(input string, cause error) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "timestamp",
		Message:    "could not parse time",
		Examples:   TimestampExamples,
		Suggestion: "Try natural language like '2 hours ago', 'yesterday', or 'this week'.",
		Cause:      cause,
	}
}

// ToUserError converts a TimeParseError to a UserError for consistent handling.
func (e *TimeParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	ue := errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
	ue.Cause = errors.ErrInvalidTimestamp
	return ue
}
