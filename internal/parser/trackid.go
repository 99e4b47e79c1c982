// Package parser provides argument and timestamp parsing for Trackedit.
package parser

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// MaxTrackIDLength is the maximum length for a track ID.
	MaxTrackIDLength = 64
)

var (
	// trackIDRegex validates track IDs: alphanumeric, dash, underscore, period.
	trackIDRegex = regexp.MustCompile(`^[a-zA-Z0-9\-_.]+$`)

	// reservedTrackIDs clash with `track` subcommand names.
	reservedTrackIDs = map[string]bool{
		"create": true,
		"delete": true,
		"list":   true,
		"show":   true,
	}
)

// ValidateTrackID checks if a string is a valid track ID.
func ValidateTrackID(id string) bool {
	if id == "" || len(id) > MaxTrackIDLength {
		return false
	}
	if reservedTrackIDs[strings.ToLower(id)] {
		return false
	}
	return trackIDRegex.MatchString(id)
}

// ConvertToTrackID converts a display name to a valid track ID.
// Example: "Lead Vocals (take 2)" -> "lead-vocals-take-2"
func ConvertToTrackID(displayName string) string {
	result := strings.ToLower(displayName)
	result = strings.ReplaceAll(result, " ", "-")

	// Remove invalid characters
	var sb strings.Builder
	for _, r := range result {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.') {
			sb.WriteRune(r)
		}
	}
	result = sb.String()

	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	result = strings.Trim(result, "-")

	if len(result) > MaxTrackIDLength {
		result = result[:MaxTrackIDLength]
	}

	return result
}

// NormalizeTrackID ensures a track ID is valid, converting if necessary.
func NormalizeTrackID(input string) string {
	input = strings.TrimSpace(input)
	if ValidateTrackID(input) {
		return input
	}
	return ConvertToTrackID(input)
}
