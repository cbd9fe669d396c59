package model

import (
	"strings"
	"time"
)

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

type User struct {
	ID          int32  `gorm:"primaryKey;column:id" json:"id"`
	Email       string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName   string `gorm:"column:first_name;type:varchar(100)" json:"firstName"`
	LastName    string `gorm:"column:last_name;type:varchar(100)" json:"lastName"`
	PhoneNumber string `gorm:"column:phone_number;type:varchar(50)" json:"phoneNumber"`
	Role        Role   `gorm:"column:role;type:varchar(20);not null;default:EMPLOYEE" json:"role"`

	// Tokens issued before this instant are rejected.
	TokensValidAfter *time.Time `gorm:"column:tokens_valid_after" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
