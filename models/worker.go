package models

import "time"

type WorkerProfile struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FarmID    uint   `json:"farm_id" gorm:"index;not null"`
	UserID    *uint  `json:"user_id" gorm:"index"` // linked login account, optional
	FirstName string `json:"first_name" gorm:"size:50;not null"`
	LastName  string `json:"last_name" gorm:"size:50;not null"`
	Phone     string `json:"phone" gorm:"size:20"`
	JobTitle  string `json:"job_title" gorm:"size:50"`

	// Comma-separated grants, e.g. "attendance,tasks,eggs".
	// Owner and admin bypass the check entirely.
	Permissions string `json:"permissions" gorm:"size:255"`

	WageType string  `json:"wage_type" gorm:"size:10;not null"` // hourly | daily | monthly
	WageRate float64 `json:"wage_rate" gorm:"not null"`
	Status   string  `json:"status" gorm:"size:10;not null;default:'active'"` // active | inactive

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
