package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/utils"
)

// Store implements core.RecordStore on GORM (MySQL or Postgres).
type Store struct {
	db *gorm.DB
}

var _ core.RecordStore = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// first maps gorm.ErrRecordNotFound to (nil, nil).
func first[T any](q *gorm.DB) (*T, error) {
	var out T
	if err := q.Take(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (s *Store) Transaction(ctx context.Context, fn func(tx core.RecordStore) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func lockUserQuery(db *gorm.DB, userID int32) *gorm.DB {
	return db.Model(&model.User{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", userID)
}

func (s *Store) LockUser(ctx context.Context, userID int32) error {
	if _, err := first[model.User](lockUserQuery(s.conn(ctx), userID)); err != nil {
		return fmt.Errorf("lock user %d: %w", userID, err)
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return first[model.User](s.conn(ctx).Where("email = ?", email))
}

func (s *Store) FindUserByID(ctx context.Context, id int32) (*model.User, error) {
	return first[model.User](s.conn(ctx).Where("id = ?", id))
}

func (s *Store) AllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.conn(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	return s.conn(ctx).Omit(clause.Associations).Save(user).Error
}

func (s *Store) FindOfficeByID(ctx context.Context, id int32) (*model.OfficeLocation, error) {
	return first[model.OfficeLocation](s.conn(ctx).Where("id = ?", id))
}

func (s *Store) AllOffices(ctx context.Context) ([]model.OfficeLocation, error) {
	var offices []model.OfficeLocation
	if err := s.conn(ctx).Order("id").Find(&offices).Error; err != nil {
		return nil, err
	}
	return offices, nil
}

func (s *Store) SaveOffice(ctx context.Context, office *model.OfficeLocation) error {
	return s.conn(ctx).Save(office).Error
}

func dayRecordQuery(db *gorm.DB, userID int32, from, to time.Time, statuses []model.AttendanceStatus) *gorm.DB {
	q := db.Model(&model.AttendanceRecord{}).
		Where("user_id = ? AND check_in_time >= ? AND check_in_time < ?", userID, from, to)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	return q.Order("check_in_time DESC")
}

func (s *Store) FindAttendanceRecord(ctx context.Context, userID int32, from, to time.Time, statuses ...model.AttendanceStatus) (*model.AttendanceRecord, error) {
	return first[model.AttendanceRecord](dayRecordQuery(s.conn(ctx), userID, from, to, statuses))
}

func attendanceQuery(db *gorm.DB, query core.AttendanceQuery) *gorm.DB {
	q := db.Model(&model.AttendanceRecord{}).Where("check_in_time >= ?", query.From)
	if !query.To.IsZero() {
		q = q.Where("check_in_time <= ?", query.To)
	}
	if query.UserID != nil {
		q = q.Where("user_id = ?", *query.UserID)
	}
	if query.OfficeID != nil {
		q = q.Where("office_id = ?", *query.OfficeID)
	}
	if query.Status != nil {
		q = q.Where("status = ?", *query.Status)
	}
	return q.Order("check_in_time DESC")
}

func (s *Store) FindAttendanceRecords(ctx context.Context, query core.AttendanceQuery) ([]model.AttendanceRecord, error) {
	records := []model.AttendanceRecord{}
	if err := attendanceQuery(s.conn(ctx), query).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) FindLatestOpenRecord(ctx context.Context, userID int32, status model.AttendanceStatus) (*model.AttendanceRecord, error) {
	return first[model.AttendanceRecord](s.conn(ctx).
		Where("user_id = ? AND status = ?", userID, status).
		Order("check_in_time DESC"))
}

func (s *Store) FindOpenRecordsBefore(ctx context.Context, cutoff time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := s.conn(ctx).
		Where("status = ? AND check_in_time < ?", model.StatusCheckedIn, cutoff).
		Order("check_in_time").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) SaveAttendanceRecord(ctx context.Context, record *model.AttendanceRecord) error {
	return s.conn(ctx).Omit(clause.Associations).Save(record).Error
}

func timeEntriesQuery(db *gorm.DB, userID *int32, from, to time.Time) *gorm.DB {
	q := db.Model(&model.TimeEntry{}).
		Where("date BETWEEN ? AND ?", from.Format(utils.DateLayout), to.Format(utils.DateLayout))
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	return q.Order("date DESC")
}

func (s *Store) FindTimeEntries(ctx context.Context, userID *int32, from, to time.Time) ([]model.TimeEntry, error) {
	entries := []model.TimeEntry{}
	if err := timeEntriesQuery(s.conn(ctx), userID, from, to).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) FindTimeEntryByID(ctx context.Context, id uuid.UUID) (*model.TimeEntry, error) {
	return first[model.TimeEntry](s.conn(ctx).Where("id = ?", id))
}

func (s *Store) FindTimeEntryByDate(ctx context.Context, userID int32, date time.Time) (*model.TimeEntry, error) {
	return first[model.TimeEntry](s.conn(ctx).Where("user_id = ? AND date = ?", userID, date.Format(utils.DateLayout)))
}

func (s *Store) SaveTimeEntry(ctx context.Context, entry *model.TimeEntry) error {
	return s.conn(ctx).Omit(clause.Associations).Save(entry).Error
}

func meetingCountQuery(db *gorm.DB, userID *int32, from, to time.Time) *gorm.DB {
	q := db.Model(&model.Meeting{}).Where("meetings.start_time BETWEEN ? AND ?", from, to)
	if userID != nil {
		q = q.Joins("JOIN meeting_participants mp ON mp.meeting_id = meetings.id").
			Where("mp.user_id = ?", *userID)
	}
	return q
}

func (s *Store) CountMeetings(ctx context.Context, userID *int32, from, to time.Time) (int64, error) {
	var n int64
	if err := meetingCountQuery(s.conn(ctx), userID, from, to).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func meetingsQuery(db *gorm.DB, userID int32, from, to time.Time) *gorm.DB {
	return meetingCountQuery(db, &userID, from, to).Order("meetings.start_time")
}

func (s *Store) FindMeetings(ctx context.Context, userID int32, from, to time.Time) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := meetingsQuery(s.conn(ctx), userID, from, to).Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}
