package common

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateOnly is a calendar date serialised as yyyy-MM-dd.
type DateOnly struct {
	time.Time
}

const dateLayout = "2006-01-02" // yyyy-MM-dd

func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Parse reads s as a UTC midnight date. The empty string yields the zero date.
func (d *DateOnly) Parse(s string) error {
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date format: %v", err)
	}
	d.Time = t
	return nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	// b is a quoted string like `"2025-10-29"`
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.Parse(s)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(dateLayout))
}
