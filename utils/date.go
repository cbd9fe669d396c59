package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysInclusive counts calendar days from start to end, both included.
func DaysInclusive(start, end time.Time) int64 {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int64(e.Sub(s).Hours()/24) + 1
}

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	return t
}

// ParseISOTime accepts RFC3339 and a few common layouts. Layouts without a zone are read in loc.
func ParseISOTime(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	// Try standard RFC3339 format (ISO 8601)
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	// Try with nanoseconds (e.g. 2025-10-13T09:30:00.123Z)
	t, err = time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return &t, nil
	}

	// Try fallback common formats
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		DateLayout,
	}
	for _, layout := range layouts {
		if tt, e := time.ParseInLocation(layout, s, loc); e == nil {
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}
