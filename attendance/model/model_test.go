package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAttendanceRecordHours(t *testing.T) {
	in := time.Date(2024, 1, 1, 8, 50, 0, 0, time.UTC)
	out := time.Date(2024, 1, 1, 17, 10, 59, 0, time.UTC)

	open := AttendanceRecord{CheckInTime: in, Status: StatusCheckedIn}
	assert.True(t, open.IsOpen())
	assert.Nil(t, open.TotalHours())
	assert.Equal(t, int64(0), open.WorkedMinutes())

	closed := AttendanceRecord{CheckInTime: in, CheckOutTime: &out, Status: StatusCheckedOut}
	assert.False(t, closed.IsOpen())
	assert.Equal(t, int64(500), closed.WorkedMinutes())
	require.NotNil(t, closed.TotalHours())
	assert.InDelta(t, 500.0/60.0, *closed.TotalHours(), 1e-9)
}

func TestBeforeCreateAssignsID(t *testing.T) {
	r := &AttendanceRecord{}
	require.NoError(t, r.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, r.ID)

	id := uuid.New()
	e := &TimeEntry{ID: id}
	require.NoError(t, e.BeforeCreate(nil))
	assert.Equal(t, id, e.ID)
}

func TestOfficeValidate(t *testing.T) {
	tests := []struct {
		name    string
		office  OfficeLocation
		wantErr bool
	}{
		{name: "Active with radius", office: OfficeLocation{Latitude: -27.47, Longitude: 153.02, AllowedRadius: 100, IsActive: true}},
		{name: "Active without radius", office: OfficeLocation{AllowedRadius: 0, IsActive: true}, wantErr: true},
		{name: "Inactive without radius", office: OfficeLocation{AllowedRadius: 0}},
		{name: "Bad latitude", office: OfficeLocation{Latitude: 91, AllowedRadius: 10, IsActive: true}, wantErr: true},
		{name: "Bad longitude", office: OfficeLocation{Longitude: -181, AllowedRadius: 10, IsActive: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.office.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeEntryDayKeyAndUserName(t *testing.T) {
	e := TimeEntry{Date: datatypes.Date(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))}
	assert.Equal(t, "2024-01-02", e.DayKey())

	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("ROOT").Valid())
}
