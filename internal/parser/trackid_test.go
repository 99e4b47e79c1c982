package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTrackID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected bool
	}{
		// Valid IDs
		{"simple_lowercase", "drums", true},
		{"with_hyphen", "lead-vocals", true},
		{"with_underscore", "lead_vocals", true},
		{"with_period", "bass.di", true},
		{"uuid", "01923c1e-7b7a-7cc1-9a57-2a6e0f4d2b11", true},
		{"uppercase", "Drums", true},

		// Invalid IDs
		{"empty", "", false},
		{"too_long", strings.Repeat("a", MaxTrackIDLength+1), false},
		{"with_space", "lead vocals", false},
		{"with_special_chars", "drums@1", false},
		{"with_slash", "drums/1", false},

		// Reserved IDs
		{"reserved_create", "create", false},
		{"reserved_delete", "delete", false},
		{"reserved_list", "list", false},
		{"reserved_show", "show", false},
		{"reserved_case_insensitive", "SHOW", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateTrackID(tt.id), "ValidateTrackID(%q)", tt.id)
		})
	}
}

func TestConvertToTrackID(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		expected    string
	}{
		{"simple", "Lead Vocals", "lead-vocals"},
		{"with_special_chars", "Lead Vocals (take 2)!", "lead-vocals-take-2"},
		{"multiple_spaces", "Lead  Vocals", "lead-vocals"},
		{"leading_trailing_spaces", "  Drums  ", "drums"},
		{"underscore_preserved", "bass_di", "bass_di"},
		{"period_preserved", "bass.di", "bass.di"},
		{"non_ascii_dropped", "Vöcals", "vcals"},
		{"only_special", "!@#$%", ""},
		{"mixed_hyphens", "lead---vocals", "lead-vocals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConvertToTrackID(tt.displayName), "ConvertToTrackID(%q)", tt.displayName)
		})
	}
}

func TestConvertToTrackIDTruncation(t *testing.T) {
	result := ConvertToTrackID(strings.Repeat("a", 100))
	assert.Len(t, result, MaxTrackIDLength)
}

func TestNormalizeTrackID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"valid_id", "drums", "drums"},
		{"needs_conversion", "Lead Vocals", "lead-vocals"},
		{"with_whitespace", "  drums  ", "drums"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTrackID(tt.input), "NormalizeTrackID(%q)", tt.input)
		})
	}
}
