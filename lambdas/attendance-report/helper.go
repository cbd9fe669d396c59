package main

import (
	"fmt"
	"strings"
	"time"

	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/lambdas/common"
)

const (
	PeriodDay  = "day"
	PeriodWeek = "week"
)

type ReportEvent struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	// Period picks a default range ending yesterday when no dates are given.
	Period string `json:"period"`
	DryRun bool   `json:"dryRun"`
}

type ReportResult struct {
	Bucket string `json:"bucket,omitempty"`
	Key    string `json:"key"`
	Size   int    `json:"size"`
	DryRun bool   `json:"dryRun"`
}

func FromBedrock(e *common.BedrockEvent) ReportEvent {
	return ReportEvent{
		StartDate: e.GetParameter("startDate"),
		EndDate:   e.GetParameter("endDate"),
		Period:    e.GetParameter("period"),
		DryRun:    strings.EqualFold(e.GetParameter("dryRun"), "true"),
	}
}

// ResolveRange turns the event into a date range relative to now in loc.
// A week is the Monday to Sunday before the current week.
func ResolveRange(e ReportEvent, now time.Time, loc *time.Location) (core.DateRange, error) {
	if e.StartDate != "" || e.EndDate != "" {
		start, err := time.ParseInLocation(time.DateOnly, e.StartDate, loc)
		if err != nil {
			return core.DateRange{}, fmt.Errorf("invalid startDate %q: %w", e.StartDate, err)
		}
		end := start
		if e.EndDate != "" {
			if end, err = time.ParseInLocation(time.DateOnly, e.EndDate, loc); err != nil {
				return core.DateRange{}, fmt.Errorf("invalid endDate %q: %w", e.EndDate, err)
			}
		}
		if end.Before(start) {
			return core.DateRange{}, fmt.Errorf("endDate %s is before startDate %s", e.EndDate, e.StartDate)
		}
		return core.DateRange{Start: start, End: end}, nil
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	switch strings.ToLower(e.Period) {
	case "", PeriodDay:
		yesterday := today.AddDate(0, 0, -1)
		return core.DateRange{Start: yesterday, End: yesterday}, nil
	case PeriodWeek:
		offset := (int(today.Weekday()) + 6) % 7
		monday := today.AddDate(0, 0, -offset-7)
		return core.DateRange{Start: monday, End: monday.AddDate(0, 0, 6)}, nil
	default:
		return core.DateRange{}, fmt.Errorf("unknown period %q", e.Period)
	}
}
