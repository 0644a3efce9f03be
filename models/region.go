package models

import "time"

// Region and District back the extension-service administration pages.
// Farms reference districts; districts belong to regions.
type Region struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:80;not null"`
	Code string `json:"code" gorm:"uniqueIndex;size:20;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type District struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	RegionID uint   `json:"region_id" gorm:"index;not null"`
	Name     string `json:"name" gorm:"size:80;not null"`
	Code     string `json:"code" gorm:"uniqueIndex;size:20;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
