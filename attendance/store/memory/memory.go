// Package memory is an in-memory RecordStore intended for tests and dev environments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"timekeeper.app/timekeeper/attendance/core"
	"timekeeper.app/timekeeper/attendance/model"
	"timekeeper.app/timekeeper/utils"
)

type data struct {
	users        map[int32]model.User
	offices      map[int32]model.OfficeLocation
	records      map[uuid.UUID]model.AttendanceRecord
	entries      map[uuid.UUID]model.TimeEntry
	meetings     []model.Meeting
	nextUserID   int32
	nextOfficeID int32
}

func (d *data) clone() *data {
	out := &data{
		users:        make(map[int32]model.User, len(d.users)),
		offices:      make(map[int32]model.OfficeLocation, len(d.offices)),
		records:      make(map[uuid.UUID]model.AttendanceRecord, len(d.records)),
		entries:      make(map[uuid.UUID]model.TimeEntry, len(d.entries)),
		meetings:     make([]model.Meeting, len(d.meetings)),
		nextUserID:   d.nextUserID,
		nextOfficeID: d.nextOfficeID,
	}
	for k, v := range d.users {
		out.users[k] = v
	}
	for k, v := range d.offices {
		out.offices[k] = v
	}
	for k, v := range d.records {
		out.records[k] = v
	}
	for k, v := range d.entries {
		out.entries[k] = v
	}
	copy(out.meetings, d.meetings)
	return out
}

type state struct {
	// txMu serialises transactions and writes made outside of one.
	txMu sync.Mutex
	mu   sync.RWMutex
	d    *data
}

type Store struct {
	state *state
	inTx  bool
}

var _ core.RecordStore = (*Store)(nil)

func New() *Store {
	return &Store{state: &state{d: &data{
		users:    make(map[int32]model.User),
		offices:  make(map[int32]model.OfficeLocation),
		records:  make(map[uuid.UUID]model.AttendanceRecord),
		entries:  make(map[uuid.UUID]model.TimeEntry),
		meetings: nil,
	}}}
}

func (s *Store) read(fn func(d *data)) {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	fn(s.state.d)
}

func (s *Store) write(fn func(d *data) error) error {
	if !s.inTx {
		s.state.txMu.Lock()
		defer s.state.txMu.Unlock()
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return fn(s.state.d)
}

// Transaction snapshots the data and restores it when fn fails.
func (s *Store) Transaction(ctx context.Context, fn func(tx core.RecordStore) error) error {
	if !s.inTx {
		s.state.txMu.Lock()
		defer s.state.txMu.Unlock()
	}

	var snapshot *data
	s.read(func(d *data) { snapshot = d.clone() })

	if err := fn(&Store{state: s.state, inTx: true}); err != nil {
		s.state.mu.Lock()
		s.state.d = snapshot
		s.state.mu.Unlock()
		return err
	}
	return nil
}

// LockUser is a no-op: transactions already run one at a time.
func (s *Store) LockUser(_ context.Context, _ int32) error {
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	var found *model.User
	s.read(func(d *data) {
		for _, u := range d.users {
			if u.Email == email {
				found = utils.Ptr(u)
				return
			}
		}
	})
	return found, nil
}

func (s *Store) FindUserByID(_ context.Context, id int32) (*model.User, error) {
	var found *model.User
	s.read(func(d *data) {
		if u, ok := d.users[id]; ok {
			found = utils.Ptr(u)
		}
	})
	return found, nil
}

func (s *Store) AllUsers(_ context.Context) ([]model.User, error) {
	var out []model.User
	s.read(func(d *data) {
		out = make([]model.User, 0, len(d.users))
		for _, u := range d.users {
			out = append(out, u)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SaveUser(_ context.Context, user *model.User) error {
	return s.write(func(d *data) error {
		for _, u := range d.users {
			if u.Email == user.Email && u.ID != user.ID {
				return fmt.Errorf("duplicate email %s", user.Email)
			}
		}
		if user.ID == 0 {
			d.nextUserID++
			user.ID = d.nextUserID
		} else if user.ID > d.nextUserID {
			d.nextUserID = user.ID
		}
		d.users[user.ID] = *user
		return nil
	})
}

func (s *Store) FindOfficeByID(_ context.Context, id int32) (*model.OfficeLocation, error) {
	var found *model.OfficeLocation
	s.read(func(d *data) {
		if o, ok := d.offices[id]; ok {
			found = utils.Ptr(o)
		}
	})
	return found, nil
}

func (s *Store) AllOffices(_ context.Context) ([]model.OfficeLocation, error) {
	var out []model.OfficeLocation
	s.read(func(d *data) {
		out = make([]model.OfficeLocation, 0, len(d.offices))
		for _, o := range d.offices {
			out = append(out, o)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SaveOffice(_ context.Context, office *model.OfficeLocation) error {
	return s.write(func(d *data) error {
		if office.ID == 0 {
			d.nextOfficeID++
			office.ID = d.nextOfficeID
		} else if office.ID > d.nextOfficeID {
			d.nextOfficeID = office.ID
		}
		d.offices[office.ID] = *office
		return nil
	})
}

func hasStatus(status model.AttendanceStatus, statuses []model.AttendanceStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func latest(records []model.AttendanceRecord) *model.AttendanceRecord {
	var found *model.AttendanceRecord
	for i := range records {
		if found == nil || records[i].CheckInTime.After(found.CheckInTime) {
			found = &records[i]
		}
	}
	return found
}

func (s *Store) filterRecords(keep func(r model.AttendanceRecord) bool) []model.AttendanceRecord {
	var out []model.AttendanceRecord
	s.read(func(d *data) {
		for _, r := range d.records {
			if keep(r) {
				out = append(out, r)
			}
		}
	})
	return out
}

func (s *Store) FindAttendanceRecord(_ context.Context, userID int32, from, to time.Time, statuses ...model.AttendanceStatus) (*model.AttendanceRecord, error) {
	matches := s.filterRecords(func(r model.AttendanceRecord) bool {
		return r.UserID == userID &&
			!r.CheckInTime.Before(from) && r.CheckInTime.Before(to) &&
			hasStatus(r.Status, statuses)
	})
	return latest(matches), nil
}

func (s *Store) FindAttendanceRecords(_ context.Context, query core.AttendanceQuery) ([]model.AttendanceRecord, error) {
	matches := s.filterRecords(func(r model.AttendanceRecord) bool {
		if query.UserID != nil && r.UserID != *query.UserID {
			return false
		}
		if query.OfficeID != nil && r.OfficeID != *query.OfficeID {
			return false
		}
		if query.Status != nil && r.Status != *query.Status {
			return false
		}
		if r.CheckInTime.Before(query.From) {
			return false
		}
		return query.To.IsZero() || !r.CheckInTime.After(query.To)
	})
	sort.Slice(matches, func(i, j int) bool { return matches[i].CheckInTime.After(matches[j].CheckInTime) })
	if matches == nil {
		matches = []model.AttendanceRecord{}
	}
	return matches, nil
}

func (s *Store) FindLatestOpenRecord(_ context.Context, userID int32, status model.AttendanceStatus) (*model.AttendanceRecord, error) {
	matches := s.filterRecords(func(r model.AttendanceRecord) bool {
		return r.UserID == userID && r.Status == status
	})
	return latest(matches), nil
}

func (s *Store) FindOpenRecordsBefore(_ context.Context, cutoff time.Time) ([]model.AttendanceRecord, error) {
	matches := s.filterRecords(func(r model.AttendanceRecord) bool {
		return r.Status == model.StatusCheckedIn && r.CheckInTime.Before(cutoff)
	})
	sort.Slice(matches, func(i, j int) bool { return matches[i].CheckInTime.Before(matches[j].CheckInTime) })
	return matches, nil
}

func (s *Store) SaveAttendanceRecord(_ context.Context, record *model.AttendanceRecord) error {
	if err := record.BeforeCreate(nil); err != nil {
		return err
	}
	return s.write(func(d *data) error {
		d.records[record.ID] = *record
		return nil
	})
}

func (s *Store) FindTimeEntries(_ context.Context, userID *int32, from, to time.Time) ([]model.TimeEntry, error) {
	fromKey, toKey := from.Format(utils.DateLayout), to.Format(utils.DateLayout)
	out := []model.TimeEntry{}
	s.read(func(d *data) {
		for _, e := range d.entries {
			if userID != nil && e.UserID != *userID {
				continue
			}
			if key := e.DayKey(); key >= fromKey && key <= toKey {
				out = append(out, e)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].DayKey() > out[j].DayKey() })
	return out, nil
}

func (s *Store) FindTimeEntryByID(_ context.Context, id uuid.UUID) (*model.TimeEntry, error) {
	var found *model.TimeEntry
	s.read(func(d *data) {
		if e, ok := d.entries[id]; ok {
			found = utils.Ptr(e)
		}
	})
	return found, nil
}

func (s *Store) FindTimeEntryByDate(_ context.Context, userID int32, date time.Time) (*model.TimeEntry, error) {
	key := date.Format(utils.DateLayout)
	var found *model.TimeEntry
	s.read(func(d *data) {
		for _, e := range d.entries {
			if e.UserID == userID && e.DayKey() == key {
				found = utils.Ptr(e)
				return
			}
		}
	})
	return found, nil
}

func (s *Store) SaveTimeEntry(_ context.Context, entry *model.TimeEntry) error {
	if err := entry.BeforeCreate(nil); err != nil {
		return err
	}
	return s.write(func(d *data) error {
		for _, e := range d.entries {
			if e.ID != entry.ID && e.UserID == entry.UserID && e.DayKey() == entry.DayKey() {
				return fmt.Errorf("duplicate time entry for user %d on %s", entry.UserID, entry.DayKey())
			}
		}
		d.entries[entry.ID] = *entry
		return nil
	})
}

// AddMeeting stores a meeting. Test and seed helper; meetings are read-only to the core.
func (s *Store) AddMeeting(meeting model.Meeting) {
	_ = s.write(func(d *data) error {
		d.meetings = append(d.meetings, meeting)
		return nil
	})
}

func (s *Store) CountMeetings(_ context.Context, userID *int32, from, to time.Time) (int64, error) {
	var n int64
	s.read(func(d *data) {
		for _, m := range d.meetings {
			if m.StartTime.Before(from) || m.StartTime.After(to) {
				continue
			}
			if userID != nil && utils.Find(m.Participants, func(u model.User) bool { return u.ID == *userID }) == nil {
				continue
			}
			n++
		}
	})
	return n, nil
}

func (s *Store) FindMeetings(_ context.Context, userID int32, from, to time.Time) ([]model.Meeting, error) {
	out := []model.Meeting{}
	s.read(func(d *data) {
		for _, m := range d.meetings {
			if m.StartTime.Before(from) || m.StartTime.After(to) {
				continue
			}
			if utils.Find(m.Participants, func(u model.User) bool { return u.ID == userID }) == nil {
				continue
			}
			out = append(out, m)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// Records returns a copy of every attendance record. Test-only helper.
func (s *Store) Records() []model.AttendanceRecord {
	return s.filterRecords(func(model.AttendanceRecord) bool { return true })
}
