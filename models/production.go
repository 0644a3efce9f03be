package models

import "time"

// Daily egg collection per farm.
type EggRecord struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FarmID    uint   `json:"farm_id" gorm:"index;not null"`
	Date      string `json:"date" gorm:"size:10;not null"` // YYYY-MM-DD
	Collected int    `json:"collected" gorm:"not null"`
	Broken    int    `json:"broken" gorm:"not null;default:0"`
	Notes     string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Daily feed usage per farm.
type FeedRecord struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	FarmID     uint    `json:"farm_id" gorm:"index;not null"`
	Date       string  `json:"date" gorm:"size:10;not null"` // YYYY-MM-DD
	FeedType   string  `json:"feed_type" gorm:"size:50;not null"`
	QuantityKg float64 `json:"quantity_kg" gorm:"not null"`
	Cost       float64 `json:"cost" gorm:"not null;default:0"`
	Notes      string  `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
