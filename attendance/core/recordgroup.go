package core

import (
	"sort"
	"time"

	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/utils"
)

// dayKey formats the local calendar day of t.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(utils.DateLayout)
}

// closedRecords keeps records with both timestamps set.
func closedRecords(records []model.AttendanceRecord) []model.AttendanceRecord {
	return utils.Filter(records, func(r model.AttendanceRecord) bool {
		return r.CheckOutTime != nil
	})
}

func sumAttendanceHours(records []model.AttendanceRecord) float64 {
	total := 0.0
	for _, r := range records {
		if h := r.TotalHours(); h != nil {
			total += *h
		}
	}
	return total
}

func sumEntryHours(entries []model.TimeEntry) float64 {
	return utils.SumBy(entries, func(e model.TimeEntry) float64 { return e.Hours })
}

// presentDayCount counts distinct local days holding a CHECKED_OUT record.
func presentDayCount(records []model.AttendanceRecord, loc *time.Location) int {
	checkedOut := utils.Filter(records, func(r model.AttendanceRecord) bool {
		return r.Status == model.StatusCheckedOut
	})
	return utils.Distinct(checkedOut, func(r model.AttendanceRecord) string {
		return dayKey(r.CheckInTime, loc)
	})
}

func distinctRecordDays(records []model.AttendanceRecord, loc *time.Location) int {
	return utils.Distinct(records, func(r model.AttendanceRecord) string {
		return dayKey(r.CheckInTime, loc)
	})
}

func countLateCheckIns(records []model.AttendanceRecord, loc *time.Location) int {
	n := 0
	for _, r := range records {
		if IsLateCheckIn(r.CheckInTime, loc) {
			n++
		}
	}
	return n
}

func countEarlyCheckOuts(records []model.AttendanceRecord, loc *time.Location) int {
	n := 0
	for _, r := range records {
		if r.CheckOutTime != nil && IsEarlyCheckOut(*r.CheckOutTime, loc) {
			n++
		}
	}
	return n
}

func checkInTimes(records []model.AttendanceRecord) []time.Time {
	return utils.Map(records, func(r model.AttendanceRecord) time.Time { return r.CheckInTime })
}

func checkOutTimes(records []model.AttendanceRecord) []time.Time {
	return utils.Map(closedRecords(records), func(r model.AttendanceRecord) time.Time { return *r.CheckOutTime })
}

// entryHoursByDay folds entry hours by YYYY-MM-DD.
func entryHoursByDay(entries []model.TimeEntry) map[string]float64 {
	result := make(map[string]float64)
	for _, e := range entries {
		result[e.DayKey()] += e.Hours
	}
	return result
}

// entryHoursByUser folds entry hours by the owner's email. Unknown owners fold under their numeric id.
func entryHoursByUser(entries []model.TimeEntry, emails map[int32]string) map[string]float64 {
	result := make(map[string]float64)
	for _, e := range entries {
		key, ok := emails[e.UserID]
		if !ok {
			key = utils.Format(&e.UserID)
		}
		result[key] += e.Hours
	}
	return result
}

// dailyStats emits one row per record joined with the day's tracked hours.
// Rows are oldest first, unlike the store which returns records newest first.
func dailyStats(records []model.AttendanceRecord, entries []model.TimeEntry, loc *time.Location) []DailyStats {
	tracked := entryHoursByDay(entries)

	sorted := make([]model.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CheckInTime.Before(sorted[j].CheckInTime)
	})

	result := make([]DailyStats, 0, len(sorted))
	for _, r := range sorted {
		day := dayKey(r.CheckInTime, loc)
		stat := DailyStats{
			Date:         day,
			Status:       r.Status,
			CheckInTime:  r.CheckInTime,
			CheckOutTime: r.CheckOutTime,
			TrackedHours: tracked[day],
			IsLate:       IsLateCheckIn(r.CheckInTime, loc),
		}
		if h := r.TotalHours(); h != nil {
			stat.AttendanceHours = *h
		}
		if r.CheckOutTime != nil {
			stat.IsEarlyCheckOut = IsEarlyCheckOut(*r.CheckOutTime, loc)
		}
		result = append(result, stat)
	}
	return result
}

// aggregateByDay folds entry hours into ascending per-day points.
func aggregateByDay(entries []model.TimeEntry) []TimeEntryAggregate {
	byDay := entryHoursByDay(entries)
	result := make([]TimeEntryAggregate, 0, len(byDay))
	for day, hours := range byDay {
		result = append(result, TimeEntryAggregate{Date: day, Hours: hours})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}
