package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"timekeeper.app/timekeeper/attendance/core"
)

type RangeInput struct {
	StartDate string `json:"startDate" jsonschema_description:"First day in YYYY-MM-DD format"`
	EndDate   string `json:"endDate" jsonschema_description:"Last day in YYYY-MM-DD format, defaults to startDate"`
}

type UserRangeInput struct {
	Email     string `json:"email" jsonschema_description:"Email address of the employee"`
	StartDate string `json:"startDate" jsonschema_description:"First day in YYYY-MM-DD format"`
	EndDate   string `json:"endDate" jsonschema_description:"Last day in YYYY-MM-DD format, defaults to startDate"`
}

// Tools answers read-only attendance questions for the assistant.
type Tools struct {
	Statistics *core.StatisticsService
	Location   *time.Location
}

func (t *Tools) dateRange(startDate, endDate string) (core.DateRange, error) {
	start, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(startDate), t.Location)
	if err != nil {
		return core.DateRange{}, fmt.Errorf("invalid startDate, expected YYYY-MM-DD: %w", err)
	}
	end := start
	if strings.TrimSpace(endDate) != "" {
		if end, err = time.ParseInLocation(time.DateOnly, strings.TrimSpace(endDate), t.Location); err != nil {
			return core.DateRange{}, fmt.Errorf("invalid endDate, expected YYYY-MM-DD: %w", err)
		}
	}
	if end.Before(start) {
		return core.DateRange{}, fmt.Errorf("endDate must not be before startDate")
	}
	return core.DateRange{Start: start, End: end}, nil
}

func (t *Tools) DepartmentStats(ctx context.Context, input RangeInput) (*core.DepartmentAttendanceStats, error) {
	dateRange, err := t.dateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	return t.Statistics.DepartmentStats(ctx, dateRange)
}

func (t *Tools) AdminStatistics(ctx context.Context, input RangeInput) (*core.AdminStatistics, error) {
	dateRange, err := t.dateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	return t.Statistics.AdminStatistics(ctx, dateRange)
}

func (t *Tools) UserStats(ctx context.Context, input UserRangeInput) (*core.UserAttendanceStats, error) {
	dateRange, err := t.dateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	return t.Statistics.UserStatsByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)), dateRange)
}

// Define registers the tools with g.
func (t *Tools) Define(g *genkit.Genkit) []ai.ToolRef {
	departmentStats := genkit.DefineTool(g, "departmentStats", "Attendance statistics for every employee over a date range",
		func(ctx *ai.ToolContext, input RangeInput) (*core.DepartmentAttendanceStats, error) {
			return t.DepartmentStats(ctx, input)
		},
	)
	adminStatistics := genkit.DefineTool(g, "timeTrackingStatistics", "Hours logged per user and per day, with meeting counts, over a date range",
		func(ctx *ai.ToolContext, input RangeInput) (*core.AdminStatistics, error) {
			return t.AdminStatistics(ctx, input)
		},
	)
	userStats := genkit.DefineTool(g, "userStats", "Attendance statistics and daily breakdown for one employee",
		func(ctx *ai.ToolContext, input UserRangeInput) (*core.UserAttendanceStats, error) {
			return t.UserStats(ctx, input)
		},
	)
	return []ai.ToolRef{departmentStats, adminStatistics, userStats}
}

// SystemPrompt tells the model how to use the tools. today anchors relative dates.
func SystemPrompt(today time.Time) string {
	return fmt.Sprintf(`
You are an assistant for office administrators reviewing attendance and time tracking.

Guidelines:
1. Today is %s. Resolve relative dates such as "last week" before calling a tool.
2. Weeks run Monday to Sunday. Dates are always YYYY-MM-DD.
3. Only answer from tool results. If a tool fails, say what was missing.
4. Hours are decimal hours. Present them rounded to one decimal place.
5. A late check-in is after 09:00 and an early check-out is before 17:00.
`, today.Format("Monday 2 January 2006"))
}
