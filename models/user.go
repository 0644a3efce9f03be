package models

import "time"

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Phone    string `json:"phone" gorm:"size:20"`
	Password string `json:"-" gorm:"not null"`            // bcrypt hash
	Role     string `json:"role" gorm:"size:20;not null"` // "admin" | "owner" | "worker" | "extension"
	Name     string `json:"name" gorm:"size:120"`

	Banned    bool   `json:"banned" gorm:"not null;default:false"`
	BanReason string `json:"ban_reason" gorm:"size:255"`

	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
