package models

import "time"

// UserSettings drives display formatting on the client: one row per user,
// created with defaults the first time settings are read.
type UserSettings struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	UserID     uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Currency   string `json:"currency" gorm:"size:3;not null;default:'NGN'"`
	DateFormat string `json:"date_format" gorm:"size:3;not null;default:'DMY'"` // DMY | MDY | YMD
	UnitSystem string `json:"unit_system" gorm:"size:10;not null;default:'metric'"`
	Language   string `json:"language" gorm:"size:5;not null;default:'en'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
