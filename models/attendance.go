package models

import "time"

// AttendanceRecord is one check-in (and eventual check-out) of a worker.
// At most one open record (CheckOutAt IS NULL) per worker.
type AttendanceRecord struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	FarmID   uint   `json:"farm_id" gorm:"index;not null"`
	WorkerID uint   `json:"worker_id" gorm:"index;not null"`
	Date     string `json:"date" gorm:"size:10;not null"` // YYYY-MM-DD

	CheckInAt  *time.Time `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`

	CheckInLat  *float64 `json:"check_in_lat"`
	CheckInLng  *float64 `json:"check_in_lng"`
	CheckOutLat *float64 `json:"check_out_lat"`
	CheckOutLng *float64 `json:"check_out_lng"`

	GeoStatus string `json:"geo_status" gorm:"size:10;not null;default:'unchecked'"` // verified | outside | unchecked
	Note      string `json:"note" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
