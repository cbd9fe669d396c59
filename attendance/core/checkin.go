package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/utils"
)

type CheckInRequest struct {
	OfficeID  int32
	Latitude  float64
	Longitude float64
}

type CheckOutRequest struct {
	Latitude  float64
	Longitude float64
	Notes     *string
}

type AttendanceStatusSummary struct {
	Date         string                  `json:"date"`
	Status       *model.AttendanceStatus `json:"status"`
	CheckInTime  *time.Time              `json:"checkInTime"`
	CheckOutTime *time.Time              `json:"checkOutTime"`
	HoursWorked  *float64                `json:"hoursWorked"`
}

// AttendanceService runs the check-in/check-out state machine. Calendar days are evaluated in loc.
type AttendanceService struct {
	store    RecordStore
	notifier ForcedCheckOutNotifier
	loc      *time.Location

	pending sync.WaitGroup
}

func NewAttendanceService(store RecordStore, notifier ForcedCheckOutNotifier, loc *time.Location) *AttendanceService {
	return &AttendanceService{store: store, notifier: notifier, loc: loc}
}

func (s *AttendanceService) today(now time.Time) (time.Time, time.Time) {
	start := utils.StartOfDay(now, s.loc)
	return start, start.AddDate(0, 0, 1)
}

func (s *AttendanceService) findUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", email, err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user not found")
	}
	return user, nil
}

func (s *AttendanceService) CheckIn(ctx context.Context, userEmail string, req CheckInRequest, now time.Time) (*model.AttendanceRecord, error) {
	user, err := s.findUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	office, err := s.store.FindOfficeByID(ctx, req.OfficeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find office %d: %w", req.OfficeID, err)
	}
	if office == nil {
		return nil, newError(ErrNotFound, "office location not found")
	}
	if !office.IsActive {
		return nil, newError(ErrPolicyViolation, "office location is not active")
	}

	startOfDay, endOfDay := s.today(now)

	var record *model.AttendanceRecord
	var invalid *InvalidLocationError
	err = s.store.Transaction(ctx, func(tx RecordStore) error {
		if err := tx.LockUser(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to lock user %d: %w", user.ID, err)
		}

		existing, err := tx.FindAttendanceRecord(ctx, user.ID, startOfDay, endOfDay, model.StatusCheckedIn, model.StatusCheckedOut)
		if err != nil {
			return fmt.Errorf("failed to find today's attendance: %w", err)
		}
		if existing != nil {
			if existing.Status == model.StatusCheckedIn {
				return newError(ErrInvalidState, "already checked in, check out first")
			}
			return newError(ErrInvalidState, "attendance already completed for today")
		}

		s.recoverStaleSession(ctx, tx, user.ID, startOfDay)

		rec := &model.AttendanceRecord{
			UserID:           user.ID,
			OfficeID:         office.ID,
			CheckInTime:      now,
			CheckInLatitude:  utils.Ptr(req.Latitude),
			CheckInLongitude: utils.Ptr(req.Longitude),
			Status:           model.StatusCheckedIn,
		}

		distance := Distance(req.Latitude, req.Longitude, office.Latitude, office.Longitude)
		if !WithinRadius(req.Latitude, req.Longitude, office.Latitude, office.Longitude, office.AllowedRadius) {
			rec.Status = model.StatusInvalidLocation
			if err := tx.SaveAttendanceRecord(ctx, rec); err != nil {
				return fmt.Errorf("failed to save invalid location record: %w", err)
			}
			invalid = &InvalidLocationError{RecordID: rec.ID, Distance: distance, AllowedRadius: office.AllowedRadius}
			return nil
		}

		if err := tx.SaveAttendanceRecord(ctx, rec); err != nil {
			return fmt.Errorf("failed to save check-in: %w", err)
		}
		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	if invalid != nil {
		fmt.Printf("[WARN] check-in rejected for %s at office %d: %.1fm away (allowed %.1fm), record %s\n",
			userEmail, office.ID, invalid.Distance, invalid.AllowedRadius, invalid.RecordID)
		return nil, invalid
	}

	fmt.Printf("[INFO] %s checked in at office %d\n", userEmail, office.ID)
	return record, nil
}

// recoverStaleSession closes an open record from the previous week. Failures are logged only.
func (s *AttendanceService) recoverStaleSession(ctx context.Context, tx RecordStore, userID int32, startOfDay time.Time) {
	err := tx.Transaction(ctx, func(inner RecordStore) error {
		stale, err := inner.FindAttendanceRecord(ctx, userID, startOfDay.AddDate(0, 0, -StaleLookbackDays), startOfDay, model.StatusCheckedIn)
		if err != nil {
			return err
		}
		if stale == nil {
			return nil
		}
		AutoClose(stale)
		if err := inner.SaveAttendanceRecord(ctx, stale); err != nil {
			return err
		}
		fmt.Printf("[INFO] auto-closed stale session %s for user %d\n", stale.ID, userID)
		return nil
	})
	if err != nil {
		fmt.Printf("[WARN] failed to auto-close stale session for user %d: %v\n", userID, err)
	}
}

func (s *AttendanceService) CheckOut(ctx context.Context, userEmail string, req CheckOutRequest, now time.Time) (*model.AttendanceRecord, error) {
	user, err := s.findUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	startOfDay, endOfDay := s.today(now)

	var record *model.AttendanceRecord
	err = s.store.Transaction(ctx, func(tx RecordStore) error {
		if err := tx.LockUser(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to lock user %d: %w", user.ID, err)
		}

		rec, err := tx.FindAttendanceRecord(ctx, user.ID, startOfDay, endOfDay, model.StatusCheckedIn, model.StatusCheckedOut)
		if err != nil {
			return fmt.Errorf("failed to find today's attendance: %w", err)
		}
		if rec == nil {
			return newError(ErrNotFound, "no check-in record found for today")
		}
		if rec.Status == model.StatusCheckedOut {
			return newError(ErrInvalidState, "already checked out for today")
		}

		office, err := tx.FindOfficeByID(ctx, rec.OfficeID)
		if err != nil {
			return fmt.Errorf("failed to find office %d: %w", rec.OfficeID, err)
		}
		if office != nil && !WithinRadius(req.Latitude, req.Longitude, office.Latitude, office.Longitude, office.AllowedRadius) {
			fmt.Printf("[WARN] %s checked out %.1fm from office %d\n",
				userEmail, Distance(req.Latitude, req.Longitude, office.Latitude, office.Longitude), office.ID)
		}

		if !MeetsMinimumDuration(rec.CheckInTime, now) {
			return newError(ErrPolicyViolation, "minimum work duration not met")
		}

		rec.CheckOutTime = &now
		rec.CheckOutLatitude = utils.Ptr(req.Latitude)
		rec.CheckOutLongitude = utils.Ptr(req.Longitude)
		rec.Notes = req.Notes
		rec.Status = model.StatusCheckedOut
		if err := tx.SaveAttendanceRecord(ctx, rec); err != nil {
			return fmt.Errorf("failed to save check-out: %w", err)
		}
		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	fmt.Printf("[INFO] %s checked out after %d minutes\n", userEmail, record.WorkedMinutes())
	return record, nil
}

// ForceCheckOut closes the user's latest open session without duration or location checks.
// The user is notified asynchronously.
func (s *AttendanceService) ForceCheckOut(ctx context.Context, adminEmail string, userID int32, req CheckOutRequest, now time.Time) (*model.AttendanceRecord, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %d: %w", userID, err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user not found")
	}

	var record *model.AttendanceRecord
	err = s.store.Transaction(ctx, func(tx RecordStore) error {
		if err := tx.LockUser(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to lock user %d: %w", user.ID, err)
		}

		rec, err := tx.FindLatestOpenRecord(ctx, user.ID, model.StatusCheckedIn)
		if err != nil {
			return fmt.Errorf("failed to find open session: %w", err)
		}
		if rec == nil {
			return newError(ErrInvalidState, "no active check-in found")
		}
		if !now.After(rec.CheckInTime) {
			return newError(ErrInvalidState, "check-out time must be after check-in time")
		}

		rec.CheckOutTime = &now
		rec.CheckOutLatitude = utils.Ptr(req.Latitude)
		rec.CheckOutLongitude = utils.Ptr(req.Longitude)
		rec.Notes = utils.Ptr(ForceCheckOutNotes(req.Notes))
		rec.Status = model.StatusCheckedOut
		if err := tx.SaveAttendanceRecord(ctx, rec); err != nil {
			return fmt.Errorf("failed to save forced check-out: %w", err)
		}
		record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	fmt.Printf("[INFO] %s force checked-out user %s (record %s)\n", adminEmail, user.Email, record.ID)
	s.notifyForcedCheckOut(ctx, user.Email, *record)
	return record, nil
}

func (s *AttendanceService) notifyForcedCheckOut(ctx context.Context, userEmail string, record model.AttendanceRecord) {
	if s.notifier == nil {
		return
	}
	notifyCtx := context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.notifier.NotifyForcedCheckOut(notifyCtx, userEmail, record); err != nil {
			fmt.Printf("[ERROR] failed to notify %s of forced check-out: %v\n", userEmail, err)
		}
	}()
}

// Wait blocks until in-flight notifications have finished.
func (s *AttendanceService) Wait() {
	s.pending.Wait()
}

// CurrentStatus summarises today's latest record. Status is nil when there is none.
func (s *AttendanceService) CurrentStatus(ctx context.Context, userEmail string, now time.Time) (*AttendanceStatusSummary, error) {
	user, err := s.findUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	startOfDay, endOfDay := s.today(now)

	summary := &AttendanceStatusSummary{Date: startOfDay.Format(utils.DateLayout)}
	rec, err := s.store.FindAttendanceRecord(ctx, user.ID, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to find today's attendance: %w", err)
	}
	if rec == nil {
		return summary, nil
	}

	summary.Status = utils.Ptr(rec.Status)
	summary.CheckInTime = utils.Ptr(rec.CheckInTime)
	summary.CheckOutTime = rec.CheckOutTime
	summary.HoursWorked = rec.TotalHours()
	return summary, nil
}

func (s *AttendanceService) History(ctx context.Context, userEmail string, dateRange DateRange) ([]model.AttendanceRecord, error) {
	user, err := s.findUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	from, to := dateRange.Bounds(s.loc)
	return s.findRecords(ctx, AttendanceQuery{UserID: &user.ID, From: from, To: to})
}

func (s *AttendanceService) AllRecords(ctx context.Context, dateRange DateRange) ([]model.AttendanceRecord, error) {
	from, to := dateRange.Bounds(s.loc)
	return s.findRecords(ctx, AttendanceQuery{From: from, To: to})
}

func (s *AttendanceService) RecordsByOffice(ctx context.Context, officeID int32, dateRange DateRange) ([]model.AttendanceRecord, error) {
	office, err := s.store.FindOfficeByID(ctx, officeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find office %d: %w", officeID, err)
	}
	if office == nil {
		return nil, newError(ErrNotFound, "office location not found")
	}
	from, to := dateRange.Bounds(s.loc)
	return s.findRecords(ctx, AttendanceQuery{OfficeID: &officeID, From: from, To: to})
}

func (s *AttendanceService) findRecords(ctx context.Context, query AttendanceQuery) ([]model.AttendanceRecord, error) {
	records, err := s.store.FindAttendanceRecords(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance records: %w", err)
	}
	return records, nil
}

// CloseStaleSessions auto-closes every open session that started before today and returns how many were closed.
func (s *AttendanceService) CloseStaleSessions(ctx context.Context, now time.Time) (int, error) {
	startOfDay, _ := s.today(now)
	stale, err := s.store.FindOpenRecordsBefore(ctx, startOfDay)
	if err != nil {
		return 0, fmt.Errorf("failed to find stale sessions: %w", err)
	}

	closed := 0
	for _, rec := range stale {
		done := false
		err := s.store.Transaction(ctx, func(tx RecordStore) error {
			if err := tx.LockUser(ctx, rec.UserID); err != nil {
				return err
			}
			// the session may have been closed since it was listed
			current, err := tx.FindAttendanceRecord(ctx, rec.UserID, rec.CheckInTime, rec.CheckInTime.Add(time.Second), model.StatusCheckedIn)
			if err != nil {
				return err
			}
			if current == nil || current.ID != rec.ID {
				return nil
			}
			AutoClose(current)
			if err := tx.SaveAttendanceRecord(ctx, current); err != nil {
				return err
			}
			done = true
			return nil
		})
		if err != nil {
			fmt.Printf("[ERROR] failed to close stale session %s: %v\n", rec.ID, err)
			continue
		}
		if done {
			closed++
		}
	}
	if closed > 0 {
		fmt.Printf("[INFO] closed %d stale sessions\n", closed)
	}
	return closed, nil
}
