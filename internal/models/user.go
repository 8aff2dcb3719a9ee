package models

import (
	"time"
)

// User account model
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName table name
func (User) TableName() string {
	return "users"
}

// Profile one per user
type Profile struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio         *string   `gorm:"type:text" json:"bio"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Address     *string   `gorm:"size:255" json:"address"`
	DateOfBirth *string   `gorm:"size:10" json:"date_of_birth"` // YYYY-MM-DD
	Image       *string   `gorm:"size:255" json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName table name
func (Profile) TableName() string {
	return "profiles"
}
