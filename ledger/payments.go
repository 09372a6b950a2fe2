package ledger

import (
	"strings"
	"time"

	"alota/models"
)

// PaymentRow is a payment joined with the tenant's display fields.
type PaymentRow struct {
	ID          uint                 `json:"id"`
	TenantID    uint                 `json:"tenant_id"`
	PropertyID  uint                 `json:"property_id"`
	PaymentDate time.Time            `json:"payment_date"`
	MonthYear   string               `json:"month_year"`
	Amount      float64              `json:"amount"`
	Method      models.PaymentMethod `json:"method"`
	TenantName  string               `json:"tenant_name"`
	Unit        string               `json:"unit"`
}

// RecordPayment stores a payment against a tenant. The property id is
// copied from the tenant row here, never taken from the caller, so the
// denormalized column cannot drift.
func (s *Store) RecordPayment(tenantID uint, date time.Time, monthYear string, amount float64, method models.PaymentMethod) (uint, error) {
	if amount <= 0 {
		return 0, invalidf("amount", "must be greater than 0")
	}
	if strings.TrimSpace(monthYear) == "" {
		return 0, invalidf("month_year", "required")
	}
	if !method.Valid() {
		return 0, invalidf("method", "unknown payment method %q", method)
	}
	t, err := s.getTenant(s.db, tenantID)
	if err != nil {
		return 0, err
	}
	p := models.Payment{
		TenantID:    tenantID,
		PropertyID:  t.PropertyID,
		PaymentDate: date,
		MonthYear:   monthYear,
		Amount:      amount,
		Method:      method,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return 0, storeErr("record payment", err)
	}
	return p.ID, nil
}

const paymentRowSelect = `payments.id, payments.tenant_id, payments.property_id,
	payments.payment_date, payments.month_year, payments.amount, payments.method,
	tenants.name AS tenant_name, tenants.unit AS unit`

// ListPayments returns payments joined with tenant name and unit, newest
// payment date first, optionally restricted to one property.
func (s *Store) ListPayments(propertyID *uint) ([]PaymentRow, error) {
	q := s.db.Table("payments").
		Select(paymentRowSelect).
		Joins("JOIN tenants ON tenants.id = payments.tenant_id")
	if propertyID != nil {
		q = q.Where("payments.property_id = ?", *propertyID)
	}
	var rows []PaymentRow
	if err := q.Order("payments.payment_date DESC").Scan(&rows).Error; err != nil {
		return nil, storeErr("list payments", err)
	}
	return rows, nil
}

// SearchPayments matches tenant name or billing period against a substring.
func (s *Store) SearchPayments(term string) ([]PaymentRow, error) {
	like := "%" + term + "%"
	var rows []PaymentRow
	err := s.db.Table("payments").
		Select(paymentRowSelect).
		Joins("JOIN tenants ON tenants.id = payments.tenant_id").
		Where("tenants.name LIKE ? OR payments.month_year LIKE ?", like, like).
		Order("payments.payment_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("search payments", err)
	}
	return rows, nil
}

// PaymentsForPeriod returns the raw payment rows for one billing period,
// optionally restricted to a property. The report engine does the math.
func (s *Store) PaymentsForPeriod(propertyID *uint, monthYear string) ([]models.Payment, error) {
	q := s.db.Where("month_year = ?", monthYear)
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}
	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, storeErr("load payments", err)
	}
	return payments, nil
}
