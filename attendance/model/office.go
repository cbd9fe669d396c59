package model

import (
	"errors"
	"time"
)

type OfficeLocation struct {
	ID            int32   `gorm:"primaryKey;column:id" json:"id"`
	Name          string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Address       string  `gorm:"column:address;type:varchar(500)" json:"address"`
	Latitude      float64 `gorm:"column:latitude;not null" json:"latitude"`
	Longitude     float64 `gorm:"column:longitude;not null" json:"longitude"`
	AllowedRadius float64 `gorm:"column:allowed_radius;not null" json:"allowedRadius"`
	IsActive      bool    `gorm:"column:is_active;not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (OfficeLocation) TableName() string {
	return "office_locations"
}

// Validate checks the geofence invariants of an office.
func (o OfficeLocation) Validate() error {
	if o.IsActive && o.AllowedRadius <= 0 {
		return errors.New("allowed radius must be greater than zero")
	}
	if o.Latitude < -90 || o.Latitude > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if o.Longitude < -180 || o.Longitude > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}
