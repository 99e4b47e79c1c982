package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// TimestampResult holds the parsed timestamp and any error.
type TimestampResult struct {
	Time  time.Time
	Error error
}

// periodRegex matches period expressions like "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(hour|day|week|month|quarter|year)$`)

// ParseTimestamp parses a natural language timestamp expression relative
// to the current time.
func ParseTimestamp(input string) TimestampResult {
	return ParseTimestampAt(input, time.Now())
}

// ParseTimestampAt parses a natural language timestamp expression relative
// to now.
func ParseTimestampAt(input string, now time.Time) TimestampResult {
	input = strings.TrimSpace(input)
	if input == "" || strings.ToLower(input) == "now" {
		return TimestampResult{Time: now}
	}

	// Check for period expressions first
	if match := periodRegex.FindStringSubmatch(input); match != nil {
		return TimestampResult{Time: periodStart(now, match[1], match[2])}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return TimestampResult{Error: err}
	}

	return TimestampResult{Time: result.Time}
}

// ParseSince parses the lower bound of a history filter. An empty input
// means no bound and yields the zero time.
func ParseSince(input string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(input) == "" {
		return time.Time{}, nil
	}
	result := ParseTimestampAt(input, now)
	if result.Error != nil {
		return time.Time{}, NewTimestampError(input, result.Error)
	}
	return result.Time, nil
}

// periodStart returns the start of a period like "this week" or "last month".
func periodStart(now time.Time, modifier, period string) time.Time {
	modifier = strings.ToLower(modifier)
	previous := modifier == "last" || modifier == "previous"

	var t time.Time

	switch strings.ToLower(period) {
	case "hour":
		t = time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
		if previous {
			t = t.Add(-time.Hour)
		}

	case "day":
		t = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, 0, -1)
		}

	case "week":
		// Weeks start on Monday
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		t = time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, 0, -7)
		}

	case "month":
		t = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -1, 0)
		}

	case "quarter":
		quarter := (int(now.Month()) - 1) / 3
		t = time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(0, -3, 0)
		}

	case "year":
		t = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		if previous {
			t = t.AddDate(-1, 0, 0)
		}

	default:
		t = now
	}

	return t
}
