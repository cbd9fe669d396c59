package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TimeEntry struct {
	ID          uuid.UUID      `gorm:"primaryKey;column:id;type:char(36)" json:"id"`
	UserID      int32          `gorm:"column:user_id;not null;uniqueIndex:uq_time_entries_user_date" json:"userId"`
	Date        datatypes.Date `gorm:"column:date;not null;uniqueIndex:uq_time_entries_user_date" json:"date"`
	Hours       float64        `gorm:"column:hours;type:decimal(5,2);not null" json:"hours"`
	Description string         `gorm:"column:description;type:text" json:"description"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Day returns the entry date as a time.Time at midnight UTC.
func (e TimeEntry) Day() time.Time {
	return time.Time(e.Date)
}

// DayKey formats the entry date as YYYY-MM-DD.
func (e TimeEntry) DayKey() string {
	return time.Time(e.Date).Format("2006-01-02")
}
