package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/manav03panchal/trackedit/internal/errors"
)

// Wednesday, mid-afternoon.
var refNow = time.Date(2026, 5, 13, 15, 42, 10, 0, time.UTC)

func TestParseTimestamp(t *testing.T) {
	now := time.Now()

	t.Run("empty_string_returns_now", func(t *testing.T) {
		result := ParseTimestamp("")
		assert.Nil(t, result.Error)
		assert.WithinDuration(t, now, result.Time, time.Second)
	})

	t.Run("NOW_case_insensitive", func(t *testing.T) {
		result := ParseTimestamp("  NOW ")
		assert.Nil(t, result.Error)
		assert.WithinDuration(t, now, result.Time, time.Second)
	})
}

func TestParseTimestampPeriods(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"this_hour", "this hour", time.Date(2026, 5, 13, 15, 0, 0, 0, time.UTC)},
		{"last_hour", "last hour", time.Date(2026, 5, 13, 14, 0, 0, 0, time.UTC)},
		{"this_day", "this day", time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC)},
		{"previous_day", "previous day", time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)},
		{"this_week", "this week", time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)},
		{"last_week", "last week", time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)},
		{"current_month", "current month", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"last_month", "last month", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"this_quarter", "this quarter", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"last_quarter", "last quarter", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"this_year", "this year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"last_year", "LAST YEAR", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseTimestampAt(tt.input, refNow)
			require.NoError(t, result.Error)
			assert.True(t, tt.expected.Equal(result.Time), "got %v", result.Time)
		})
	}
}

func TestPeriodStartSunday(t *testing.T) {
	sunday := time.Date(2026, 5, 17, 10, 0, 0, 0, time.UTC)
	start := periodStart(sunday, "this", "week")
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 11, start.Day())
}

func TestParseTimestampNaturalLanguage(t *testing.T) {
	result := ParseTimestampAt("2 hours ago", refNow)
	require.NoError(t, result.Error)
	assert.WithinDuration(t, refNow.Add(-2*time.Hour), result.Time, time.Minute)
}

func TestParseSince(t *testing.T) {
	t.Run("empty_means_unbounded", func(t *testing.T) {
		since, err := ParseSince("  ", refNow)
		require.NoError(t, err)
		assert.True(t, since.IsZero())
	})

	t.Run("period", func(t *testing.T) {
		since, err := ParseSince("this day", refNow)
		require.NoError(t, err)
		assert.Equal(t, 13, since.Day())
		assert.Equal(t, 0, since.Hour())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseSince("notatime", refNow)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTimestamp)

		var parseErr *TimeParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "notatime", parseErr.Input)
	})
}
