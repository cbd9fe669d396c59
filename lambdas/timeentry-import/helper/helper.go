package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/utils"
)

// Punch is one row of a clock export: ID,Email,Timestamp,Location.
type Punch struct {
	ID        int
	Email     string
	Timestamp time.Time
	Date      string
	Location  string
}

// DaySummary spans the first to the last punch of a user on one day.
type DaySummary struct {
	Email   string
	Date    string
	From    time.Time
	To      time.Time
	Punches []Punch
}

// Hours is the span in whole minutes, as hours.
func (d DaySummary) Hours() float64 {
	return float64(core.ElapsedMinutes(d.From, d.To)) / 60.0
}

func ParsePunchCSV(r io.Reader, loc *time.Location) ([]Punch, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	var punches []Punch
	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 4 {
			return nil, fmt.Errorf("row %d: expected 4 columns, got %d", i, len(row))
		}

		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid ID: %w", i, err)
		}

		email := strings.ToLower(strings.TrimSpace(row[1]))
		if email == "" {
			return nil, fmt.Errorf("row %d: missing email", i)
		}

		parsed, err := utils.ParseISOTime(strings.TrimSpace(row[2]), loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i, err)
		}
		timestamp := parsed.In(loc)

		punches = append(punches, Punch{
			ID:        id,
			Email:     email,
			Timestamp: timestamp,
			Date:      timestamp.Format(utils.DateLayout),
			Location:  row[3],
		})
	}

	return punches, nil
}

// GroupPunches folds punches per user and day, ordered by date then email.
func GroupPunches(punches []Punch) []DaySummary {
	grouped := utils.GroupBy(punches, func(p Punch) string { return p.Email + "|" + p.Date })

	summaries := make([]DaySummary, 0, len(grouped))
	for _, group := range grouped {
		summary := DaySummary{Email: group[0].Email, Date: group[0].Date, From: group[0].Timestamp, To: group[0].Timestamp}
		for _, p := range group {
			if p.Timestamp.Before(summary.From) {
				summary.From = p.Timestamp
			}
			if p.Timestamp.After(summary.To) {
				summary.To = p.Timestamp
			}
		}
		summary.Punches = group
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Date != summaries[j].Date {
			return summaries[i].Date < summaries[j].Date
		}
		return summaries[i].Email < summaries[j].Email
	})
	return summaries
}

type TimeLogger interface {
	LogTime(ctx context.Context, userEmail string, req core.TimeEntryRequest, now time.Time) (*model.TimeEntry, error)
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Failed   []string `json:"failed"`
}

func (r ImportResult) String() string {
	return fmt.Sprintf("imported %d, skipped %d, failed %d", r.Imported, r.Skipped, len(r.Failed))
}

// Import logs one time entry per user and day. Days that already have an entry are skipped.
func Import(ctx context.Context, logger TimeLogger, r io.Reader, loc *time.Location, now time.Time) (ImportResult, error) {
	result := ImportResult{Failed: []string{}}

	punches, err := ParsePunchCSV(r, loc)
	if err != nil {
		return result, fmt.Errorf("failed to parse CSV: %w", err)
	}

	for _, day := range GroupPunches(punches) {
		date, err := time.Parse(utils.DateLayout, day.Date)
		if err != nil {
			return result, err
		}
		_, err = logger.LogTime(ctx, day.Email, core.TimeEntryRequest{
			Date:        date,
			Hours:       day.Hours(),
			Description: fmt.Sprintf("Imported from %d clock punch(es)", len(day.Punches)),
		}, now)
		switch {
		case err == nil:
			result.Imported++
		case errors.Is(err, core.ErrInvalidState):
			result.Skipped++
		default:
			fmt.Printf("[WARN] %s on %s not imported: %v\n", day.Email, day.Date, err)
			result.Failed = append(result.Failed, fmt.Sprintf("%s %s: %v", day.Email, day.Date, err))
		}
	}

	return result, nil
}
