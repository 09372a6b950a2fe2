package models

import "time"

// Note is a dated communication or maintenance record against a tenant.
// For Payment Excuse notes the promised payment date is encoded as a
// marker appended to NoteText (see pkg/report). PropertyID mirrors the
// tenant's property at insert time.
type Note struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	TenantID   uint      `gorm:"index;not null"`
	PropertyID uint      `gorm:"index;not null"`
	NoteDate   time.Time `gorm:"not null"`
	NoteType   NoteType  `gorm:"size:64;not null"`
	NoteText   string    `gorm:"type:text;not null"`
	Photos     []Photo   `gorm:"foreignKey:NoteID"`
}
