package common

import "time"

type AttendanceRecordDTO struct {
	ID               string     `json:"id"`
	UserID           int32      `json:"userId"`
	OfficeID         int32      `json:"officeId"`
	CheckInTime      time.Time  `json:"checkInTime"`
	CheckOutTime     *time.Time `json:"checkOutTime"`
	Status           string     `json:"status"`
	CheckInLocation  *string    `json:"checkInLocation"`
	CheckOutLocation *string    `json:"checkOutLocation"`
	TotalHours       *float64   `json:"totalHours"`
	Notes            *string    `json:"notes"`
}

type AttendanceStatusDTO struct {
	Date         string     `json:"date"`
	Status       *string    `json:"status"`
	CheckInTime  *time.Time `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	HoursWorked  *float64   `json:"hoursWorked"`
}

type TimeEntryDTO struct {
	ID          string  `json:"id,omitempty"`
	Date        string  `json:"date"` // yyyy-MM-dd
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
}

type UserDTO struct {
	ID        int32  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type RoleChangeDTO struct {
	User                  UserDTO   `json:"user"`
	SessionsRevokedBefore time.Time `json:"sessionsRevokedBefore"`
}
