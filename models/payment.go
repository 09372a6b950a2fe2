package models

import "time"

// Payment records money received from a tenant. MonthYear is the billing
// period the payment applies to ("Feb 2026"), which is independent of the
// calendar date the money arrived; several partial payments may share one
// period. PropertyID is a denormalized copy of the tenant's property,
// filled in by the store at insert time.
type Payment struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	TenantID    uint          `gorm:"index;not null"`
	PropertyID  uint          `gorm:"index;not null"`
	PaymentDate time.Time     `gorm:"not null"`
	MonthYear   string        `gorm:"size:32;index;not null"`
	Amount      float64       `gorm:"not null"`
	Method      PaymentMethod `gorm:"size:32;not null"`
}
