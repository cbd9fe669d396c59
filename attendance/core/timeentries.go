package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"timekeeper.app/timekeeper/attendance/model"
)

type TimeEntryRequest struct {
	Date        time.Time
	Hours       float64
	Description string
}

type TimeEntryService struct {
	store RecordStore
	loc   *time.Location
}

func NewTimeEntryService(store RecordStore, loc *time.Location) *TimeEntryService {
	return &TimeEntryService{store: store, loc: loc}
}

// civilDate keeps the calendar day of t as midnight UTC, the storage form of TimeEntry.Date.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *TimeEntryService) validate(req TimeEntryRequest, now time.Time) error {
	today := civilDate(now.In(s.loc))
	if civilDate(req.Date).After(today) {
		return newError(ErrPolicyViolation, "cannot log time for future dates")
	}
	if req.Hours < 0 {
		return newError(ErrPolicyViolation, "hours must not be negative")
	}
	return nil
}

func (s *TimeEntryService) findUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", email, err)
	}
	if user == nil {
		return nil, newError(ErrNotFound, "user not found")
	}
	return user, nil
}

func (s *TimeEntryService) LogTime(ctx context.Context, userEmail string, req TimeEntryRequest, now time.Time) (*model.TimeEntry, error) {
	if err := s.validate(req, now); err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	entry := &model.TimeEntry{
		UserID:      user.ID,
		Date:        datatypes.Date(civilDate(req.Date)),
		Hours:       req.Hours,
		Description: req.Description,
	}
	err = s.store.Transaction(ctx, func(tx RecordStore) error {
		if err := tx.LockUser(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to lock user %d: %w", user.ID, err)
		}
		existing, err := tx.FindTimeEntryByDate(ctx, user.ID, civilDate(req.Date))
		if err != nil {
			return fmt.Errorf("failed to find time entry: %w", err)
		}
		if existing != nil {
			return newError(ErrInvalidState, "time entry already exists for this date")
		}
		if err := tx.SaveTimeEntry(ctx, entry); err != nil {
			return fmt.Errorf("failed to save time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *TimeEntryService) UpdateTimeEntry(ctx context.Context, userEmail string, entryID uuid.UUID, req TimeEntryRequest, now time.Time) (*model.TimeEntry, error) {
	if err := s.validate(req, now); err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	var entry *model.TimeEntry
	err = s.store.Transaction(ctx, func(tx RecordStore) error {
		if err := tx.LockUser(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to lock user %d: %w", user.ID, err)
		}
		current, err := tx.FindTimeEntryByID(ctx, entryID)
		if err != nil {
			return fmt.Errorf("failed to find time entry %s: %w", entryID, err)
		}
		if current == nil {
			return newError(ErrNotFound, "time entry not found")
		}
		if current.UserID != user.ID {
			return newError(ErrForbidden, "time entry belongs to another user")
		}

		other, err := tx.FindTimeEntryByDate(ctx, user.ID, civilDate(req.Date))
		if err != nil {
			return fmt.Errorf("failed to find time entry: %w", err)
		}
		if other != nil && other.ID != current.ID {
			return newError(ErrInvalidState, "time entry already exists for this date")
		}

		current.Date = datatypes.Date(civilDate(req.Date))
		current.Hours = req.Hours
		current.Description = req.Description
		if err := tx.SaveTimeEntry(ctx, current); err != nil {
			return fmt.Errorf("failed to save time entry: %w", err)
		}
		entry = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *TimeEntryService) ListTimeEntries(ctx context.Context, userEmail string, dateRange DateRange) ([]model.TimeEntry, error) {
	user, err := s.findUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.FindTimeEntries(ctx, &user.ID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}
	return entries, nil
}

// AllTimeEntries lists every user's entries in the range.
func (s *TimeEntryService) AllTimeEntries(ctx context.Context, dateRange DateRange) ([]model.TimeEntry, error) {
	entries, err := s.store.FindTimeEntries(ctx, nil, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}
	return entries, nil
}

// TimeEntriesForGraph returns hours per day, oldest first.
func (s *TimeEntryService) TimeEntriesForGraph(ctx context.Context, userEmail string, dateRange DateRange) ([]TimeEntryAggregate, error) {
	entries, err := s.ListTimeEntries(ctx, userEmail, dateRange)
	if err != nil {
		return nil, err
	}
	return aggregateByDay(entries), nil
}

func (s *TimeEntryService) MonthlyTotal(ctx context.Context, userEmail string, year int, month time.Month) (float64, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	entries, err := s.ListTimeEntries(ctx, userEmail, DateRange{Start: first, End: last})
	if err != nil {
		return 0, err
	}
	return sumEntryHours(entries), nil
}
