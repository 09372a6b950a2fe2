package models

import "time"

// Expense holds the monthly outgoings of a property split across the
// three tracked categories. At most one row may exist per
// (property, month_year); writes go through the store's upsert.
type Expense struct {
	ID               uint `gorm:"primaryKey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PropertyID       uint    `gorm:"not null;uniqueIndex:idx_expense_property_month"`
	MonthYear        string  `gorm:"size:32;not null;uniqueIndex:idx_expense_property_month"`
	Garden           float64 `gorm:"not null;default:0"`
	Electrical       float64 `gorm:"not null;default:0"`
	OtherMaintenance float64 `gorm:"not null;default:0"`
}
