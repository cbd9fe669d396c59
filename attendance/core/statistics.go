package core

import (
	"context"
	"fmt"
	"time"

	"timekeeper.app/timekeeper/attendance/model"
)

type DailyStats struct {
	Date            string                 `json:"date"`
	Status          model.AttendanceStatus `json:"status"`
	CheckInTime     time.Time              `json:"checkInTime"`
	CheckOutTime    *time.Time             `json:"checkOutTime"`
	AttendanceHours float64                `json:"attendanceHours"`
	TrackedHours    float64                `json:"trackedHours"`
	IsLate          bool                   `json:"isLate"`
	IsEarlyCheckOut bool                   `json:"isEarlyCheckOut"`
}

type UserAttendanceStats struct {
	UserID               int32        `json:"userId"`
	UserName             string       `json:"userName"`
	Email                string       `json:"email"`
	TotalDays            int64        `json:"totalDays"`
	PresentDays          int          `json:"presentDays"`
	TotalAttendanceHours float64      `json:"totalAttendanceHours"`
	TotalTrackedHours    float64      `json:"totalTrackedHours"`
	AverageCheckInTime   *TimeOfDay   `json:"averageCheckInTime"`
	AverageCheckOutTime  *TimeOfDay   `json:"averageCheckOutTime"`
	AverageWorkHours     float64      `json:"averageWorkHours"`
	LateCheckIns         int          `json:"lateCheckIns"`
	EarlyCheckOuts       int          `json:"earlyCheckOuts"`
	DailyStats           []DailyStats `json:"dailyStats"`
}

type DepartmentAttendanceStats struct {
	TotalEmployees    int                   `json:"totalEmployees"`
	AverageAttendance float64               `json:"averageAttendance"`
	AverageWorkHours  float64               `json:"averageWorkHours"`
	UserStats         []UserAttendanceStats `json:"userStats"`
}

type AdminStatistics struct {
	TotalHoursLogged float64            `json:"totalHoursLogged"`
	TotalUsers       int                `json:"totalUsers"`
	TotalTimeEntries int                `json:"totalTimeEntries"`
	TotalMeetings    int64              `json:"totalMeetings"`
	HoursPerUser     map[string]float64 `json:"hoursPerUser"`
	HoursPerDay      map[string]float64 `json:"hoursPerDay"`
}

type UserStatistics struct {
	UserID             int32              `json:"userId"`
	TotalHours         float64            `json:"totalHours"`
	TotalEntries       int                `json:"totalEntries"`
	TotalMeetings      int64              `json:"totalMeetings"`
	HoursPerDay        map[string]float64 `json:"hoursPerDay"`
	AverageHoursPerDay float64            `json:"averageHoursPerDay"`
}

type TimeEntryAggregate struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// StatisticsService derives read-only attendance and time tracking figures.
type StatisticsService struct {
	store RecordStore
	loc   *time.Location
}

func NewStatisticsService(store RecordStore, loc *time.Location) *StatisticsService {
	return &StatisticsService{store: store, loc: loc}
}

func (s *StatisticsService) UserStats(ctx context.Context, userID int32, dateRange DateRange) (*UserAttendanceStats, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %d: %w", userID, err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user not found")
	}
	return s.userStats(ctx, *user, dateRange)
}

// UserStatsByEmail resolves the user by email first.
func (s *StatisticsService) UserStatsByEmail(ctx context.Context, email string, dateRange DateRange) (*UserAttendanceStats, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", email, err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user not found")
	}
	return s.userStats(ctx, *user, dateRange)
}

func (s *StatisticsService) userStats(ctx context.Context, user model.User, dateRange DateRange) (*UserAttendanceStats, error) {
	from, to := dateRange.Bounds(s.loc)
	records, err := s.store.FindAttendanceRecords(ctx, AttendanceQuery{UserID: &user.ID, From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance for user %d: %w", user.ID, err)
	}
	entries, err := s.store.FindTimeEntries(ctx, &user.ID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries for user %d: %w", user.ID, err)
	}
	return BuildUserStats(user, dateRange, records, entries, s.loc), nil
}

// BuildUserStats folds one user's records and entries over the range.
func BuildUserStats(user model.User, dateRange DateRange, records []model.AttendanceRecord, entries []model.TimeEntry, loc *time.Location) *UserAttendanceStats {
	totalHours := sumAttendanceHours(records)

	averageWorkHours := 0.0
	if days := distinctRecordDays(records, loc); days > 0 {
		averageWorkHours = totalHours / float64(days)
	}

	return &UserAttendanceStats{
		UserID:               user.ID,
		UserName:             user.FullName(),
		Email:                user.Email,
		TotalDays:            dateRange.Days(),
		PresentDays:          presentDayCount(records, loc),
		TotalAttendanceHours: totalHours,
		TotalTrackedHours:    sumEntryHours(entries),
		AverageCheckInTime:   AverageTimeOfDay(checkInTimes(records), loc),
		AverageCheckOutTime:  AverageTimeOfDay(checkOutTimes(records), loc),
		AverageWorkHours:     averageWorkHours,
		LateCheckIns:         countLateCheckIns(records, loc),
		EarlyCheckOuts:       countEarlyCheckOuts(records, loc),
		DailyStats:           dailyStats(records, entries, loc),
	}
}

func (s *StatisticsService) DepartmentStats(ctx context.Context, dateRange DateRange) (*DepartmentAttendanceStats, error) {
	users, err := s.store.AllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	userStats := make([]UserAttendanceStats, 0, len(users))
	for _, user := range users {
		stats, err := s.userStats(ctx, user, dateRange)
		if err != nil {
			return nil, err
		}
		userStats = append(userStats, *stats)
	}
	return BuildDepartmentStats(userStats), nil
}

// BuildDepartmentStats averages per-user figures. No users yields zeros.
func BuildDepartmentStats(userStats []UserAttendanceStats) *DepartmentAttendanceStats {
	result := &DepartmentAttendanceStats{
		TotalEmployees: len(userStats),
		UserStats:      userStats,
	}
	if len(userStats) == 0 {
		result.UserStats = []UserAttendanceStats{}
		return result
	}

	attendance, hours := 0.0, 0.0
	for _, us := range userStats {
		if us.TotalDays > 0 {
			attendance += float64(us.PresentDays) / float64(us.TotalDays) * 100
		}
		hours += us.TotalAttendanceHours
	}
	result.AverageAttendance = attendance / float64(len(userStats))
	result.AverageWorkHours = hours / float64(len(userStats))
	return result
}

func (s *StatisticsService) AdminStatistics(ctx context.Context, dateRange DateRange) (*AdminStatistics, error) {
	users, err := s.store.AllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	entries, err := s.store.FindTimeEntries(ctx, nil, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}
	from, to := dateRange.Bounds(s.loc)
	meetings, err := s.store.CountMeetings(ctx, nil, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count meetings: %w", err)
	}

	emails := make(map[int32]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	return &AdminStatistics{
		TotalHoursLogged: sumEntryHours(entries),
		TotalUsers:       len(users),
		TotalTimeEntries: len(entries),
		TotalMeetings:    meetings,
		HoursPerUser:     entryHoursByUser(entries, emails),
		HoursPerDay:      entryHoursByDay(entries),
	}, nil
}

func (s *StatisticsService) UserStatistics(ctx context.Context, userID int32, dateRange DateRange) (*UserStatistics, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %d: %w", userID, err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user not found")
	}

	entries, err := s.store.FindTimeEntries(ctx, &user.ID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries for user %d: %w", userID, err)
	}
	from, to := dateRange.Bounds(s.loc)
	meetings, err := s.store.CountMeetings(ctx, &user.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count meetings for user %d: %w", userID, err)
	}

	hoursPerDay := entryHoursByDay(entries)
	total := sumEntryHours(entries)
	average := 0.0
	if len(hoursPerDay) > 0 {
		average = total / float64(len(hoursPerDay))
	}

	return &UserStatistics{
		UserID:             user.ID,
		TotalHours:         total,
		TotalEntries:       len(entries),
		TotalMeetings:      meetings,
		HoursPerDay:        hoursPerDay,
		AverageHoursPerDay: average,
	}, nil
}
