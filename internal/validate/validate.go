// Package validate provides input validation helpers for the Trackedit CLI.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/manav03panchal/trackedit/internal/errors"
	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/parser"
)

const (
	// MaxTrackNameLength is the maximum length for a track name.
	MaxTrackNameLength = 256
	// MaxInstrumentIDLength is the maximum length for an instrument ID.
	MaxInstrumentIDLength = 128
)

// TrackID validates a track ID.
func TrackID(id string) error {
	if id == "" {
		return &errors.UserError{
			Message:    "Track ID cannot be empty",
			Suggestion: "Use 'trackedit track' to see available tracks",
			Cause:      errors.ErrInvalidTrackID,
		}
	}
	if !parser.ValidateTrackID(id) {
		ue := errors.NewUserErrorWithField("id", id,
			"Invalid track ID",
			errors.Suggestions[errors.ErrInvalidTrackID])
		ue.Cause = errors.ErrInvalidTrackID
		return ue
	}
	return nil
}

// TrackName validates a track name. Whitespace-only names are rejected;
// any other printable text is allowed.
func TrackName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &errors.UserError{
			Message:    "Track name cannot be empty",
			Suggestion: "Provide a name like 'Lead Vocals'",
			Cause:      errors.ErrInvalidName,
		}
	}
	if utf8.RuneCountInString(name) > MaxTrackNameLength {
		ue := errors.NewUserErrorWithField("name", TruncateString(name, 32),
			"Track name too long",
			fmt.Sprintf("Track names must be %d characters or fewer", MaxTrackNameLength))
		ue.Cause = errors.ErrInvalidName
		return ue
	}
	return nil
}

// InstrumentID validates an instrument ID. Empty clears the instrument.
func InstrumentID(id string) error {
	if id == "" {
		return nil
	}
	if len(id) > MaxInstrumentIDLength {
		ue := errors.NewUserErrorWithField("instrument", TruncateString(id, 32),
			"Instrument ID too long",
			fmt.Sprintf("Instrument IDs must be %d characters or fewer", MaxInstrumentIDLength))
		ue.Cause = errors.ErrInvalidInstrument
		return ue
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			ue := errors.NewUserErrorWithField("instrument", id,
				"Invalid instrument ID",
				errors.Suggestions[errors.ErrInvalidInstrument])
			ue.Cause = errors.ErrInvalidInstrument
			return ue
		}
	}
	return nil
}

// HexColour validates and parses a "#RRGGBB" colour.
func HexColour(colour string) (model.Colour, error) {
	c, err := model.ParseColour(colour)
	if err != nil {
		ue := errors.NewUserErrorWithField("colour", colour,
			"Invalid colour format",
			"Use hex format like '#FF5733' or '#00FF00'")
		ue.Cause = errors.ErrInvalidColour
		return model.DefaultColour, ue
	}
	return c, nil
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}

// InRange validates that an integer is within a range.
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return errors.NewUserErrorWithField(field, fmt.Sprint(value),
			"Value out of range",
			fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return nil
}
