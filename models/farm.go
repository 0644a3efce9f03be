package models

import "time"

// Farm is the tenant root: every record below it carries FarmID.
type Farm struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	OwnerID       uint   `json:"owner_id" gorm:"index;not null"` // FK -> users.id
	Name          string `json:"name" gorm:"size:100;not null"`
	LivestockType string `json:"livestock_type" gorm:"size:30;not null"` // poultry/cattle/goats/mixed...
	Address       string `json:"address" gorm:"size:255"`
	Phone         string `json:"phone" gorm:"size:20"`
	DistrictID    *uint  `json:"district_id" gorm:"index"` // extension-service district, optional

	// When true, check-ins outside the active geofence are rejected
	// instead of being recorded as "outside".
	RequireGeofence bool `json:"require_geofence" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
