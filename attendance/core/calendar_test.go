package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/utils"
)

func TestCalendarEvents(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.store.AddMeeting(model.Meeting{
		ID: 1, Title: "Standup", Description: "daily", StartTime: at(3, 9, 30), EndTime: at(3, 9, 45),
		CreatedByID: f.admin.ID, Participants: []model.User{f.user, f.admin},
	})
	f.store.AddMeeting(model.Meeting{
		ID: 2, Title: "Board", StartTime: at(3, 14, 0), EndTime: at(3, 15, 0),
		CreatedByID: f.admin.ID, Participants: []model.User{f.admin},
	})
	f.store.AddMeeting(model.Meeting{
		ID: 3, Title: "Planning", StartTime: at(20, 10, 0), EndTime: at(20, 11, 0),
		CreatedByID: f.admin.ID, Participants: []model.User{f.user},
	})
	require.NoError(t, f.store.SaveTimeEntry(ctx, &model.TimeEntry{
		UserID: f.user.ID, Date: datatypes.Date(utils.MustParseDate("2024-01-02")), Hours: 7.5, Description: "Reporting",
	}))
	require.NoError(t, f.store.SaveTimeEntry(ctx, &model.TimeEntry{
		UserID: f.admin.ID, Date: datatypes.Date(utils.MustParseDate("2024-01-02")), Hours: 4, Description: "Admin",
	}))

	svc := core.NewCalendarService(f.store, loc)
	dateRange := core.DateRange{Start: utils.MustParseDate("2024-01-01"), End: utils.MustParseDate("2024-01-07")}
	events, err := svc.CalendarEvents(ctx, f.user.Email, dateRange)
	require.NoError(t, err)
	require.Len(t, events, 2)

	entry := events[0]
	assert.Equal(t, core.EventTimeEntry, entry.Type)
	assert.Equal(t, "Work Hours", entry.Title)
	assert.Equal(t, "Reporting", entry.Description)
	assert.True(t, at(2, 0, 0).Equal(entry.StartTime))
	assert.True(t, at(2, 7, 30).Equal(entry.EndTime))
	require.NotNil(t, entry.Hours)
	assert.Equal(t, 7.5, *entry.Hours)

	meeting := events[1]
	assert.Equal(t, core.EventMeeting, meeting.Type)
	assert.Equal(t, "1", meeting.ID)
	assert.Equal(t, "Standup", meeting.Title)
	assert.True(t, at(3, 9, 30).Equal(meeting.StartTime))
	assert.Nil(t, meeting.Hours)

	_, err = svc.CalendarEvents(ctx, "nobody@example.com", dateRange)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCalendarEventsEmptyRange(t *testing.T) {
	f := newFixture(t, nil)

	events, err := core.NewCalendarService(f.store, loc).CalendarEvents(context.Background(), f.user.Email,
		core.DateRange{Start: utils.MustParseDate("2024-03-01"), End: utils.MustParseDate("2024-03-01")})
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NotNil(t, events)
}
