package models

import "time"

// Tenant occupies a unit in a property. Email and phone are optional and
// only used for the overdue reminder list.
type Tenant struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	PropertyID uint     `gorm:"index;not null"`
	Property   Property `gorm:"foreignKey:PropertyID"`
	Name       string   `gorm:"size:255;not null"`
	Unit       string   `gorm:"size:64"`
	Rent       float64  `gorm:"not null"`
	Email      string   `gorm:"size:255"`
	Phone      string   `gorm:"size:64"`
}
