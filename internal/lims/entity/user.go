package entity

import "time"

// User is a lab account: reception staff, tester or manager.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	Username     string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:100;not null"`
	Name         string    `json:"name" gorm:"size:100"`
	Email        string    `json:"email" gorm:"size:100"`
	Role         string    `json:"role" gorm:"size:20;not null;index"`
	Team         string    `json:"team" gorm:"size:32;index"`
	Status       string    `json:"status" gorm:"size:20;default:active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "lims_users"
}

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)
