package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/utils"
)

const (
	SheetTimeEntries    = "Time Entries"
	SheetUserStatistics = "User Statistics"
	SheetAttendance     = "Attendance"
	ContentType         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timestampLayout     = "2006-01-02 15:04"
	defaultSheet        = "Sheet1"
)

// Dataset is everything a workbook is built from.
type Dataset struct {
	Users      []model.User
	Offices    []model.OfficeLocation
	Entries    []model.TimeEntry
	Statistics []core.UserStatistics
	Records    []model.AttendanceRecord
}

type Services struct {
	Users       *core.UserService
	Offices     *core.OfficeService
	TimeEntries *core.TimeEntryService
	Statistics  *core.StatisticsService
	Attendance  *core.AttendanceService
}

// Load collects the report data for dateRange.
func Load(ctx context.Context, s Services, dateRange core.DateRange) (*Dataset, error) {
	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	offices, err := s.Offices.ListOffices(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.TimeEntries.AllTimeEntries(ctx, dateRange)
	if err != nil {
		return nil, err
	}
	records, err := s.Attendance.AllRecords(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	stats := make([]core.UserStatistics, 0, len(users))
	for _, u := range users {
		st, err := s.Statistics.UserStatistics(ctx, u.ID, dateRange)
		if err != nil {
			return nil, err
		}
		stats = append(stats, *st)
	}

	return &Dataset{Users: users, Offices: offices, Entries: entries, Statistics: stats, Records: records}, nil
}

// Build renders the dataset into a workbook. Timestamps are written in loc.
func Build(d *Dataset, loc *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(defaultSheet, SheetTimeEntries); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetUserStatistics, SheetAttendance} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	emails := make(map[int32]string, len(d.Users))
	for _, u := range d.Users {
		emails[u.ID] = u.Email
	}
	userLabel := func(id int32) string {
		if email, ok := emails[id]; ok {
			return email
		}
		return utils.Format(&id)
	}
	offices := make(map[int32]string, len(d.Offices))
	for _, o := range d.Offices {
		offices[o.ID] = o.Name
	}

	entryRows := utils.Map(d.Entries, func(e model.TimeEntry) []any {
		return []any{e.DayKey(), userLabel(e.UserID), e.Hours, e.Description}
	})
	if err := writeSheet(f, SheetTimeEntries, header, []any{"Date", "User", "Hours", "Description"}, entryRows); err != nil {
		return nil, err
	}

	statRows := utils.Map(d.Statistics, func(s core.UserStatistics) []any {
		return []any{userLabel(s.UserID), s.TotalHours, s.AverageHoursPerDay, s.TotalMeetings}
	})
	if err := writeSheet(f, SheetUserStatistics, header, []any{"User", "Total Hours", "Average Hours/Day", "Total Meetings"}, statRows); err != nil {
		return nil, err
	}

	recordRows := utils.Map(d.Records, func(r model.AttendanceRecord) []any {
		var checkOut, hours any
		if r.CheckOutTime != nil {
			checkOut = r.CheckOutTime.In(loc).Format(timestampLayout)
		}
		if h := r.TotalHours(); h != nil {
			hours = *h
		}
		return []any{
			r.CheckInTime.In(loc).Format(utils.DateLayout),
			userLabel(r.UserID),
			offices[r.OfficeID],
			r.CheckInTime.In(loc).Format(timestampLayout),
			checkOut,
			string(r.Status),
			hours,
			utils.Deref(r.Notes, ""),
		}
	})
	if err := writeSheet(f, SheetAttendance, header, []any{"Date", "User", "Office", "Check In", "Check Out", "Status", "Hours", "Notes"}, recordRows); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, style int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// Generate loads and renders the report, returning the xlsx bytes.
func Generate(ctx context.Context, s Services, dateRange core.DateRange, loc *time.Location) ([]byte, error) {
	data, err := Load(ctx, s, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to load report data: %w", err)
	}
	f, err := Build(data, loc)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName is the download name of the report for dateRange.
func FileName(dateRange core.DateRange) string {
	return fmt.Sprintf("attendance_%s_%s.xlsx", dateRange.Start.Format(utils.DateLayout), dateRange.End.Format(utils.DateLayout))
}
