package models

import "time"

// AuditLog is append-only; mutating handlers write one entry per change.
type AuditLog struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	EntryID  string `json:"entry_id" gorm:"uniqueIndex;size:36;not null"` // uuid
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	FarmID   *uint  `json:"farm_id" gorm:"index"`
	Action   string `json:"action" gorm:"size:20;not null"` // create | update | delete | ban | approve...
	Entity   string `json:"entity" gorm:"size:30;not null"`
	EntityID uint   `json:"entity_id"`
	Detail   string `json:"detail" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
}
