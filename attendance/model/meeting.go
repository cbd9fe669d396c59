package model

import "time"

type Meeting struct {
	ID          int32     `gorm:"primaryKey;column:id" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	StartTime   time.Time `gorm:"column:start_time;not null;index" json:"startTime"`
	EndTime     time.Time `gorm:"column:end_time;not null" json:"endTime"`
	CreatedByID int32     `gorm:"column:created_by_id;not null" json:"createdById"`

	CreatedBy    User   `gorm:"foreignKey:CreatedByID;references:ID" json:"-"`
	Participants []User `gorm:"many2many:meeting_participants;joinForeignKey:meeting_id;joinReferences:user_id" json:"participants"`
}

func (Meeting) TableName() string {
	return "meetings"
}

// All lists the models managed by the store, in dependency order.
func All() []any {
	return []any{&User{}, &OfficeLocation{}, &AttendanceRecord{}, &TimeEntry{}, &Meeting{}}
}
