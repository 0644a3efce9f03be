package models

import "time"

type PayrollPeriod struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FarmID    uint   `json:"farm_id" gorm:"index;not null"`
	StartDate string `json:"start_date" gorm:"size:10;not null"`            // YYYY-MM-DD
	EndDate   string `json:"end_date" gorm:"size:10;not null"`              // YYYY-MM-DD
	Status    string `json:"status" gorm:"size:10;not null;default:'open'"` // open | closed | paid

	// Last computed total across workers. The compute endpoint re-aggregates
	// from attendance; this is never adjusted incrementally.
	GrossWages float64    `json:"gross_wages" gorm:"not null;default:0"`
	ComputedAt *time.Time `json:"computed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Payment struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	FarmID    uint    `json:"farm_id" gorm:"index;not null"`
	PeriodID  uint    `json:"period_id" gorm:"index;not null"`
	WorkerID  uint    `json:"worker_id" gorm:"index;not null"`
	Amount    float64 `json:"amount" gorm:"not null"`
	Method    string  `json:"method" gorm:"size:20"` // cash | transfer | mobile_money
	Reference string  `json:"reference" gorm:"size:60"`

	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
