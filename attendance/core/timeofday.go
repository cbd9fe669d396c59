package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a wall clock time as seconds since midnight.
type TimeOfDay int

func TimeOfDayOf(t time.Time, loc *time.Location) TimeOfDay {
	t = t.In(loc)
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Second
}

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// AverageTimeOfDay returns the mean wall clock time truncated to the second, or nil for no input.
func AverageTimeOfDay(times []time.Time, loc *time.Location) *TimeOfDay {
	if len(times) == 0 {
		return nil
	}
	total := 0
	for _, t := range times {
		total += int(TimeOfDayOf(t, loc))
	}
	avg := TimeOfDay(total / len(times))
	return &avg
}

// ParseTimeOfDay reads HH:MM:SS.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay(h*3600 + m*60 + sec), nil
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
