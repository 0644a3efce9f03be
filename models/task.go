package models

import "time"

// TaskAssignment moves pending -> in_progress -> completed -> approved|rejected.
// A rejected task may be completed again (new photo/notes on the same row).
type TaskAssignment struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	FarmID      uint   `json:"farm_id" gorm:"index;not null"`
	WorkerID    uint   `json:"worker_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"size:120;not null"`
	Description string `json:"description" gorm:"type:text"`
	Priority    string `json:"priority" gorm:"size:10;not null;default:'medium'"` // low | medium | high
	DueDate     string `json:"due_date" gorm:"size:10"`                           // YYYY-MM-DD
	Status      string `json:"status" gorm:"size:15;not null;default:'pending'"`

	CompletionPhoto string     `json:"completion_photo" gorm:"size:255"`
	CompletionNotes string     `json:"completion_notes" gorm:"type:text"`
	CompletedAt     *time.Time `json:"completed_at"`

	DecidedAt    *time.Time `json:"decided_at"`
	DecidedBy    *uint      `json:"decided_by"` // user_id of the approver
	RejectReason string     `json:"reject_reason" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
