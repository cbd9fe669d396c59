package attendance

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"timekeeper.app/timekeeper/attendance/model"
)

type CheckInDTO struct {
	OfficeID  int32    `json:"officeId" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

type CheckOutDTO struct {
	Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	Notes     *string  `json:"notes"`
}

// RecordDTO is an attendance record as returned by the API.
type RecordDTO struct {
	ID               uuid.UUID              `json:"id"`
	UserID           int32                  `json:"userId"`
	OfficeID         int32                  `json:"officeId"`
	CheckInTime      time.Time              `json:"checkInTime"`
	CheckOutTime     *time.Time             `json:"checkOutTime"`
	Status           model.AttendanceStatus `json:"status"`
	CheckInLocation  *string                `json:"checkInLocation"`
	CheckOutLocation *string                `json:"checkOutLocation"`
	TotalHours       *float64               `json:"totalHours"`
	Notes            *string                `json:"notes"`
}

func location(lat, lng *float64) *string {
	if lat == nil || lng == nil {
		return nil
	}
	s := fmt.Sprintf("%.6f,%.6f", *lat, *lng)
	return &s
}

func NewRecordDTO(r model.AttendanceRecord) RecordDTO {
	return RecordDTO{
		ID:               r.ID,
		UserID:           r.UserID,
		OfficeID:         r.OfficeID,
		CheckInTime:      r.CheckInTime,
		CheckOutTime:     r.CheckOutTime,
		Status:           r.Status,
		CheckInLocation:  location(r.CheckInLatitude, r.CheckInLongitude),
		CheckOutLocation: location(r.CheckOutLatitude, r.CheckOutLongitude),
		TotalHours:       r.TotalHours(),
		Notes:            r.Notes,
	}
}

func NewRecordDTOs(records []model.AttendanceRecord) []RecordDTO {
	out := make([]RecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, NewRecordDTO(r))
	}
	return out
}
