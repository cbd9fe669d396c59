package core

import (
	"strings"
	"time"

	"timekeeper.app/timekeeper/attendance/model"
)

const (
	// Check-ins after this time of day are late.
	LateCheckInCutoff = 9 * time.Hour
	// Check-outs before this time of day are early.
	EarlyCheckOutCutoff = 17 * time.Hour

	AutoCloseDuration  = 8 * time.Hour
	StaleLookbackDays  = 7
	MinimumWorkMinutes = 60

	ForceCheckOutAnnotation = "[Force checked-out by admin]"
)

// IsLateCheckIn reports a check-in strictly after 09:00 local time.
func IsLateCheckIn(checkIn time.Time, loc *time.Location) bool {
	return TimeOfDayOf(checkIn, loc).Duration() > LateCheckInCutoff
}

// IsEarlyCheckOut reports a check-out strictly before 17:00 local time.
func IsEarlyCheckOut(checkOut time.Time, loc *time.Location) bool {
	return TimeOfDayOf(checkOut, loc).Duration() < EarlyCheckOutCutoff
}

// ElapsedMinutes counts whole minutes from start to end.
func ElapsedMinutes(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Minute)
}

func MeetsMinimumDuration(checkIn, now time.Time) bool {
	return ElapsedMinutes(checkIn, now) >= MinimumWorkMinutes
}

// AutoClose closes a stale session with a synthetic eight hour day.
func AutoClose(record *model.AttendanceRecord) {
	checkOut := record.CheckInTime.Add(AutoCloseDuration)
	record.CheckOutTime = &checkOut
	record.CheckOutLatitude = record.CheckInLatitude
	record.CheckOutLongitude = record.CheckInLongitude
	record.Status = model.StatusCheckedOut
}

// ForceCheckOutNotes appends the admin annotation to notes.
func ForceCheckOutNotes(notes *string) string {
	if notes == nil || strings.TrimSpace(*notes) == "" {
		return ForceCheckOutAnnotation
	}
	return *notes + " " + ForceCheckOutAnnotation
}
