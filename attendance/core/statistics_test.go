package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/attendance/store/memory"
	"timekeeper.app/timekeeper/utils"
)

func closedRecord(t *testing.T, store *memory.Store, userID, officeID int32, in, out time.Time) {
	t.Helper()
	rec := &model.AttendanceRecord{
		UserID:       userID,
		OfficeID:     officeID,
		CheckInTime:  in,
		CheckOutTime: &out,
		Status:       model.StatusCheckedOut,
	}
	require.NoError(t, store.SaveAttendanceRecord(context.Background(), rec))
}

func logTime(t *testing.T, store *memory.Store, email, date string, hours float64) {
	t.Helper()
	svc := core.NewTimeEntryService(store, loc)
	_, err := svc.LogTime(context.Background(), email, core.TimeEntryRequest{Date: utils.MustParseDate(date), Hours: hours}, at(31, 12, 0))
	require.NoError(t, err)
}

func twoDays() core.DateRange {
	return core.DateRange{Start: utils.MustParseDate("2024-01-01"), End: utils.MustParseDate("2024-01-02")}
}

func TestUserStatsWorkedExample(t *testing.T) {
	f := newFixture(t, nil)
	closedRecord(t, f.store, f.user.ID, f.office.ID, at(1, 8, 50), at(1, 17, 10))
	closedRecord(t, f.store, f.user.ID, f.office.ID, at(2, 9, 10), at(2, 16, 50))
	logTime(t, f.store, f.user.Email, "2024-01-01", 4)
	logTime(t, f.store, f.user.Email, "2024-01-02", 5)

	svc := core.NewStatisticsService(f.store, loc)
	stats, err := svc.UserStats(context.Background(), f.user.ID, twoDays())
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", stats.UserName)
	assert.Equal(t, int64(2), stats.TotalDays)
	assert.Equal(t, 2, stats.PresentDays)
	assert.InDelta(t, 9.0, stats.TotalTrackedHours, 1e-9)
	assert.InDelta(t, 16.0, stats.TotalAttendanceHours, 1e-9)
	assert.InDelta(t, 8.0, stats.AverageWorkHours, 1e-9)
	assert.Equal(t, 1, stats.LateCheckIns)
	assert.Equal(t, 1, stats.EarlyCheckOuts)
	assert.Equal(t, "09:00:00", stats.AverageCheckInTime.String())
	assert.Equal(t, "17:00:00", stats.AverageCheckOutTime.String())

	require.Len(t, stats.DailyStats, 2)
	day1, day2 := stats.DailyStats[0], stats.DailyStats[1]
	assert.Equal(t, "2024-01-01", day1.Date)
	assert.InDelta(t, 4.0, day1.TrackedHours, 1e-9)
	assert.InDelta(t, 500.0/60.0, day1.AttendanceHours, 1e-9)
	assert.False(t, day1.IsLate)
	assert.False(t, day1.IsEarlyCheckOut)
	assert.Equal(t, "2024-01-02", day2.Date)
	assert.InDelta(t, 5.0, day2.TrackedHours, 1e-9)
	assert.True(t, day2.IsLate)
	assert.True(t, day2.IsEarlyCheckOut)
}

func TestUserStatsWithoutRecords(t *testing.T) {
	f := newFixture(t, nil)
	svc := core.NewStatisticsService(f.store, loc)

	stats, err := svc.UserStats(context.Background(), f.user.ID, twoDays())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.PresentDays)
	assert.Equal(t, 0.0, stats.AverageWorkHours)
	assert.Equal(t, 0.0, stats.TotalAttendanceHours)
	assert.Empty(t, stats.DailyStats)
	assert.NotNil(t, stats.DailyStats)
	assert.Nil(t, stats.AverageCheckInTime)
	assert.Nil(t, stats.AverageCheckOutTime)

	_, err = svc.UserStats(context.Background(), 999, twoDays())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUserStatsOpenRecordCountsOnlyCheckIn(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.CheckIn(context.Background(), f.user.Email, f.checkInReq(), at(2, 9, 30))
	require.NoError(t, err)

	stats, err := core.NewStatisticsService(f.store, loc).UserStatsByEmail(context.Background(), f.user.Email, twoDays())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.PresentDays)
	assert.Equal(t, 1, stats.LateCheckIns)
	assert.Equal(t, 0, stats.EarlyCheckOuts)
	assert.Equal(t, "09:30:00", stats.AverageCheckInTime.String())
	assert.Nil(t, stats.AverageCheckOutTime)
	assert.Equal(t, 0.0, stats.AverageWorkHours)
}

func TestDepartmentStatsWithoutUsers(t *testing.T) {
	svc := core.NewStatisticsService(memory.New(), loc)

	stats, err := svc.DepartmentStats(context.Background(), twoDays())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalEmployees)
	assert.Equal(t, 0.0, stats.AverageAttendance)
	assert.Equal(t, 0.0, stats.AverageWorkHours)
	assert.NotNil(t, stats.UserStats)
	assert.Empty(t, stats.UserStats)
}

func TestDepartmentStatsAverages(t *testing.T) {
	f := newFixture(t, nil)
	closedRecord(t, f.store, f.user.ID, f.office.ID, at(1, 8, 50), at(1, 17, 10))
	closedRecord(t, f.store, f.user.ID, f.office.ID, at(2, 9, 10), at(2, 16, 50))

	stats, err := core.NewStatisticsService(f.store, loc).DepartmentStats(context.Background(), twoDays())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalEmployees)
	// jane 100%, admin 0%
	assert.InDelta(t, 50.0, stats.AverageAttendance, 1e-9)
	assert.InDelta(t, 8.0, stats.AverageWorkHours, 1e-9)
	assert.Len(t, stats.UserStats, 2)
}

func TestBuildDepartmentStatsZeroDayRange(t *testing.T) {
	stats := core.BuildDepartmentStats([]core.UserAttendanceStats{{TotalDays: 0, PresentDays: 0, TotalAttendanceHours: 4}})
	assert.Equal(t, 0.0, stats.AverageAttendance)
	assert.Equal(t, 4.0, stats.AverageWorkHours)
}

func TestAdminStatistics(t *testing.T) {
	f := newFixture(t, nil)
	logTime(t, f.store, f.user.Email, "2024-01-01", 4)
	logTime(t, f.store, f.user.Email, "2024-01-02", 5)
	logTime(t, f.store, f.admin.Email, "2024-01-02", 2.5)
	logTime(t, f.store, f.admin.Email, "2024-01-05", 3)

	f.store.AddMeeting(model.Meeting{ID: 1, Title: "Standup", StartTime: at(1, 9, 0), EndTime: at(1, 9, 15), Participants: []model.User{f.user}})
	f.store.AddMeeting(model.Meeting{ID: 2, Title: "Review", StartTime: at(2, 14, 0), EndTime: at(2, 15, 0), Participants: []model.User{f.user, f.admin}})
	f.store.AddMeeting(model.Meeting{ID: 3, Title: "Later", StartTime: at(9, 14, 0), EndTime: at(9, 15, 0)})

	stats, err := core.NewStatisticsService(f.store, loc).AdminStatistics(context.Background(), twoDays())
	require.NoError(t, err)

	assert.InDelta(t, 11.5, stats.TotalHoursLogged, 1e-9)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 3, stats.TotalTimeEntries)
	assert.Equal(t, int64(2), stats.TotalMeetings)
	assert.Equal(t, map[string]float64{"jane@example.com": 9, "boss@example.com": 2.5}, stats.HoursPerUser)
	assert.Equal(t, map[string]float64{"2024-01-01": 4, "2024-01-02": 7.5}, stats.HoursPerDay)
}

func TestUserStatistics(t *testing.T) {
	f := newFixture(t, nil)
	logTime(t, f.store, f.user.Email, "2024-01-01", 4)
	logTime(t, f.store, f.user.Email, "2024-01-02", 5)
	f.store.AddMeeting(model.Meeting{ID: 1, StartTime: at(2, 14, 0), EndTime: at(2, 15, 0), Participants: []model.User{f.user}})
	f.store.AddMeeting(model.Meeting{ID: 2, StartTime: at(2, 16, 0), EndTime: at(2, 17, 0), Participants: []model.User{f.admin}})

	stats, err := core.NewStatisticsService(f.store, loc).UserStatistics(context.Background(), f.user.ID, twoDays())
	require.NoError(t, err)

	assert.InDelta(t, 9.0, stats.TotalHours, 1e-9)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, int64(1), stats.TotalMeetings)
	assert.InDelta(t, 4.5, stats.AverageHoursPerDay, 1e-9)
	assert.Equal(t, map[string]float64{"2024-01-01": 4, "2024-01-02": 5}, stats.HoursPerDay)
}

func TestStatisticsAreIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	closedRecord(t, f.store, f.user.ID, f.office.ID, at(1, 8, 50), at(1, 17, 10))
	logTime(t, f.store, f.user.Email, "2024-01-01", 4)
	svc := core.NewStatisticsService(f.store, loc)

	first, err := svc.UserStats(context.Background(), f.user.ID, twoDays())
	require.NoError(t, err)
	second, err := svc.UserStats(context.Background(), f.user.ID, twoDays())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, f.store.Records(), 1)
}
