package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	StatusCheckedIn       AttendanceStatus = "CHECKED_IN"
	StatusCheckedOut      AttendanceStatus = "CHECKED_OUT"
	StatusInvalidLocation AttendanceStatus = "INVALID_LOCATION"
)

type AttendanceRecord struct {
	ID       uuid.UUID `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	UserID   int32     `gorm:"column:user_id;not null;index:idx_attendance_user_checkin" json:"userId"`
	OfficeID int32     `gorm:"column:office_id;not null;index" json:"officeId"`

	CheckInTime       time.Time  `gorm:"column:check_in_time;not null;index:idx_attendance_user_checkin" json:"checkInTime"`
	CheckOutTime      *time.Time `gorm:"column:check_out_time" json:"checkOutTime"`
	CheckInLatitude   *float64   `gorm:"column:check_in_latitude" json:"checkInLatitude"`
	CheckInLongitude  *float64   `gorm:"column:check_in_longitude" json:"checkInLongitude"`
	CheckOutLatitude  *float64   `gorm:"column:check_out_latitude" json:"checkOutLatitude"`
	CheckOutLongitude *float64   `gorm:"column:check_out_longitude" json:"checkOutLongitude"`

	Status AttendanceStatus `gorm:"column:status;type:varchar(20);not null;index" json:"status"`
	Notes  *string          `gorm:"column:notes;type:text" json:"notes"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	User   User           `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Office OfficeLocation `gorm:"foreignKey:OfficeID;references:ID" json:"-"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func (r *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsOpen reports a checked-in session without a check-out.
func (r AttendanceRecord) IsOpen() bool {
	return r.Status == StatusCheckedIn && r.CheckOutTime == nil
}

// WorkedMinutes is the whole number of minutes between check-in and check-out.
func (r AttendanceRecord) WorkedMinutes() int64 {
	if r.CheckOutTime == nil {
		return 0
	}
	return int64(r.CheckOutTime.Sub(r.CheckInTime) / time.Minute)
}

// TotalHours is nil until the record is closed.
func (r AttendanceRecord) TotalHours() *float64 {
	if r.CheckOutTime == nil {
		return nil
	}
	hours := float64(r.WorkedMinutes()) / 60.0
	return &hours
}
