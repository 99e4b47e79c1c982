package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrTrackNotFound:     "Use 'trackedit track' to see available tracks.",
	ErrInvalidTrackID:    "Track IDs must be alphanumeric with dashes, underscores, or periods (max 64 chars).",
	ErrInvalidName:       "Track names must be non-empty and at most 256 characters.",
	ErrInvalidInstrument: "Instrument IDs must not contain whitespace or control characters.",
	ErrInvalidTimestamp:  "Try formats like '2 hours ago', 'yesterday at 3pm', or '2026-01-02'.",
	ErrInvalidFormat:     "Use json or yaml.",
	ErrInvalidColour:     "Use hex colour format like '#FF5733' or '#00FF00'.",
	ErrDuplicateTrack:    "Pick another --id or delete the existing track first.",
	ErrNothingToUndo:     "Use 'trackedit history' to see what can be undone.",
	ErrNothingToRedo:     "Redo is only available right after an undo.",
	ErrActionFailed:      "The track it refers to may have been deleted. Use 'trackedit history' to inspect the entry.",
	ErrUnknownKind:       "The history contains an entry this version cannot read.",

	// System errors
	ErrLockHeld: "Another trackedit command is running. Wait for it to finish and try again.",
	ErrDiskFull: "Free up disk space and try again. The edit was applied in memory but not saved.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// A UserError's own suggestion wins over the sentinel's
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// GetCategorySuggestion returns a generic suggestion based on error category.
func GetCategorySuggestion(err error) string {
	switch Classify(err) {
	case CategoryUser:
		return "Check your input and try again. Use --help for usage information."
	case CategorySystem:
		return "This is a system error. Check the data directory and try again."
	}
	return ""
}

// CommandExamples provides example commands for common errors.
var CommandExamples = map[error][]string{
	ErrInvalidColour: {
		"trackedit colour <track-id> '#FF5733'",
		"trackedit track create Drums --colour '#00FF00'",
	},
	ErrInvalidTimestamp: {
		"trackedit history --since '2 hours ago'",
		"trackedit history --since yesterday",
	},
	ErrNothingToUndo: {
		"trackedit rename <track-id> 'Lead Vocals'",
		"trackedit undo",
	},
}

// GetExamples returns example commands for an error.
func GetExamples(err error) []string {
	for knownErr, examples := range CommandExamples {
		if errors.Is(err, knownErr) {
			return examples
		}
	}
	return nil
}
