package core

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/utils"
)

type CalendarEventType string

const (
	EventMeeting   CalendarEventType = "MEETING"
	EventTimeEntry CalendarEventType = "TIME_ENTRY"
)

const workHoursTitle = "Work Hours"

type CalendarEvent struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StartTime   time.Time         `json:"startTime"`
	EndTime     time.Time         `json:"endTime"`
	Type        CalendarEventType `json:"type"`
	Hours       *float64          `json:"hours,omitempty"`
}

// CalendarService merges a user's meetings and time entries into one read-only view.
type CalendarService struct {
	store RecordStore
	loc   *time.Location
}

func NewCalendarService(store RecordStore, loc *time.Location) *CalendarService {
	return &CalendarService{store: store, loc: loc}
}

// CalendarEvents lists the user's meetings and time entries in the range, earliest first.
// A time entry starts at midnight of its day and lasts its hours.
func (s *CalendarService) CalendarEvents(ctx context.Context, userEmail string, dateRange DateRange) ([]CalendarEvent, error) {
	user, err := s.store.FindUserByEmail(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userEmail, err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user not found")
	}

	from, to := dateRange.Bounds(s.loc)
	meetings, err := s.store.FindMeetings(ctx, user.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load meetings for user %d: %w", user.ID, err)
	}
	entries, err := s.store.FindTimeEntries(ctx, &user.ID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries for user %d: %w", user.ID, err)
	}

	events := make([]CalendarEvent, 0, len(meetings)+len(entries))
	events = append(events, utils.Map(meetings, func(m model.Meeting) CalendarEvent {
		return CalendarEvent{
			ID:          strconv.Itoa(int(m.ID)),
			Title:       m.Title,
			Description: m.Description,
			StartTime:   m.StartTime.In(s.loc),
			EndTime:     m.EndTime.In(s.loc),
			Type:        EventMeeting,
		}
	})...)
	events = append(events, utils.Map(entries, func(e model.TimeEntry) CalendarEvent {
		day := e.Day()
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
		return CalendarEvent{
			ID:          e.ID.String(),
			Title:       workHoursTitle,
			Description: e.Description,
			StartTime:   start,
			EndTime:     start.Add(time.Duration(e.Hours * float64(time.Hour))),
			Type:        EventTimeEntry,
			Hours:       utils.Ptr(e.Hours),
		}
	})...)

	sort.SliceStable(events, func(i, j int) bool { return events[i].StartTime.Before(events[j].StartTime) })
	return events, nil
}
