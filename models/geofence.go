package models

import "time"

// Geofence bounds worker check-ins. Circle: CenterLat/CenterLng/RadiusM.
// Polygon: Vertices holds a JSON array of [lat,lng] pairs.
// ToleranceM widens the boundary in both shapes.
type Geofence struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	FarmID uint   `json:"farm_id" gorm:"index;not null"`
	Name   string `json:"name" gorm:"size:80;not null"`
	Kind   string `json:"kind" gorm:"size:10;not null"` // circle | polygon

	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	RadiusM   float64 `json:"radius_m"`

	Vertices string `json:"vertices" gorm:"type:text"` // [[lat,lng],...]

	ToleranceM float64 `json:"tolerance_m" gorm:"not null;default:0"`
	Active     bool    `json:"active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// One active geofence per farm is enforced in the handler, same as the
// other uniqueness rules that span rows.
