package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/utils"
)

// DateRange is a closed range of calendar days. Only the year, month and day of Start and End are used.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Bounds returns [startOfDay(Start), End 23:59:59] in loc.
func (r DateRange) Bounds(loc *time.Location) (time.Time, time.Time) {
	from := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, loc)
	to := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 23, 59, 59, 0, loc)
	return from, to
}

// Days counts the days in the range, both ends included.
func (r DateRange) Days() int64 {
	return utils.DaysInclusive(r.Start, r.End)
}

// AttendanceQuery filters attendance records. Nil fields are not filtered; a zero To is unbounded.
// From and To are inclusive.
type AttendanceQuery struct {
	UserID   *int32
	OfficeID *int32
	Status   *model.AttendanceStatus
	From     time.Time
	To       time.Time
}

// RecordStore is the persistence boundary of the attendance domain.
// Single-row lookups return (nil, nil) when nothing matches.
type RecordStore interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id int32) (*model.User, error)
	AllUsers(ctx context.Context) ([]model.User, error)
	SaveUser(ctx context.Context, user *model.User) error
	// LockUser serialises writers for one user until the surrounding transaction ends.
	LockUser(ctx context.Context, userID int32) error

	FindOfficeByID(ctx context.Context, id int32) (*model.OfficeLocation, error)
	AllOffices(ctx context.Context) ([]model.OfficeLocation, error)
	SaveOffice(ctx context.Context, office *model.OfficeLocation) error

	// FindAttendanceRecord returns the latest record of the user with check-in in [from, to).
	// With no statuses every status matches.
	FindAttendanceRecord(ctx context.Context, userID int32, from, to time.Time, statuses ...model.AttendanceStatus) (*model.AttendanceRecord, error)
	// FindAttendanceRecords orders by check-in time descending.
	FindAttendanceRecords(ctx context.Context, query AttendanceQuery) ([]model.AttendanceRecord, error)
	FindLatestOpenRecord(ctx context.Context, userID int32, status model.AttendanceStatus) (*model.AttendanceRecord, error)
	// FindOpenRecordsBefore lists CHECKED_IN records with check-in before cutoff.
	FindOpenRecordsBefore(ctx context.Context, cutoff time.Time) ([]model.AttendanceRecord, error)
	SaveAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error

	// FindTimeEntries matches entries dated from..to (calendar days, inclusive), date descending.
	FindTimeEntries(ctx context.Context, userID *int32, from, to time.Time) ([]model.TimeEntry, error)
	FindTimeEntryByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error)
	FindTimeEntryByDate(ctx context.Context, userID int32, date time.Time) (*model.TimeEntry, error)
	SaveTimeEntry(ctx context.Context, entry *model.TimeEntry) error

	// CountMeetings counts meetings starting in [from, to], for one participant when userID is set.
	CountMeetings(ctx context.Context, userID *int32, from, to time.Time) (int64, error)
	// FindMeetings lists the participant's meetings starting in [from, to], earliest first.
	FindMeetings(ctx context.Context, userID int32, from, to time.Time) ([]model.Meeting, error)

	// Transaction runs fn against a store bound to a transaction. Calls nest as savepoints.
	Transaction(ctx context.Context, fn func(tx RecordStore) error) error
}

type ForcedCheckOutNotifier interface {
	NotifyForcedCheckOut(ctx context.Context, userEmail string, record model.AttendanceRecord) error
}
