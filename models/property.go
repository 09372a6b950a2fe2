package models

import "time"

// Property is the root entity: every tenant, payment, note, photo and
// expense belongs to exactly one property.
type Property struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Name       string `gorm:"size:255;not null"`
	TotalUnits int    `gorm:"not null;default:1"`
	Location   string `gorm:"size:255"`
	Address    string `gorm:"size:512"`
}
