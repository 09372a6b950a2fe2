// Package report computes the dashboard and monthly-report figures from
// rows already read out of the store. Every function is pure: same inputs,
// same outputs, nothing written anywhere.
package report

import (
	"sort"

	"alota/models"
)

// Per-tenant rent status for a billing period.
const (
	StatusOverdue  = "Overdue"
	StatusPaid     = "Paid"
	StatusOverpaid = "Overpaid"
)

// Occupancy returns the occupied percentage, 0 when the property has no
// units recorded.
func Occupancy(occupied, totalUnits int) float64 {
	if totalUnits <= 0 {
		return 0
	}
	return float64(occupied) / float64(totalUnits) * 100
}

// PotentialRevenue is the rent roll: the sum of rents over the tenants.
func PotentialRevenue(tenants []models.Tenant) float64 {
	var total float64
	for _, t := range tenants {
		total += t.Rent
	}
	return total
}

// ActualRevenue sums the payments whose billing period matches monthYear.
func ActualRevenue(payments []models.Payment, monthYear string) float64 {
	var total float64
	for _, p := range payments {
		if p.MonthYear == monthYear {
			total += p.Amount
		}
	}
	return total
}

// Net is actual revenue less the three expense categories.
func Net(actual, garden, electrical, otherMaintenance float64) float64 {
	return actual - (garden + electrical + otherMaintenance)
}

// MonthlyRow is one tenant's line in the monthly rent report.
type MonthlyRow struct {
	TenantID  uint    `json:"tenant_id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Rent      float64 `json:"rent"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	TotalPaid float64 `json:"total_paid"`
	Balance   float64 `json:"balance"`
	Status    string  `json:"status"`
}

// MonthlyRows builds the rent report for one billing period. Every tenant
// gets a row even with no matching payments (outer-join semantics): such
// tenants show TotalPaid 0 and their full rent as balance. Rows are
// ordered by tenant name.
func MonthlyRows(tenants []models.Tenant, payments []models.Payment, monthYear string) []MonthlyRow {
	paid := make(map[uint]float64, len(tenants))
	for _, p := range payments {
		if p.MonthYear == monthYear {
			paid[p.TenantID] += p.Amount
		}
	}
	rows := make([]MonthlyRow, 0, len(tenants))
	for _, t := range tenants {
		total := paid[t.ID]
		balance := t.Rent - total
		status := StatusPaid
		switch {
		case balance > 0:
			status = StatusOverdue
		case balance < 0:
			status = StatusOverpaid
		}
		rows = append(rows, MonthlyRow{
			TenantID:  t.ID,
			Name:      t.Name,
			Unit:      t.Unit,
			Rent:      t.Rent,
			Phone:     t.Phone,
			Email:     t.Email,
			TotalPaid: total,
			Balance:   balance,
			Status:    status,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// Totals aggregates a monthly report.
type Totals struct {
	Due       float64 `json:"due"`
	Collected float64 `json:"collected"`
	Arrears   float64 `json:"arrears"`
}

// ReportTotals folds the per-tenant rows into due/collected/arrears.
func ReportTotals(rows []MonthlyRow) Totals {
	var t Totals
	for _, r := range rows {
		t.Due += r.Rent
		t.Collected += r.TotalPaid
	}
	t.Arrears = t.Due - t.Collected
	return t
}

// Summary is the dashboard block for one property in one billing period.
type Summary struct {
	PropertyID   uint    `json:"property_id"`
	Name         string  `json:"name"`
	TotalUnits   int     `json:"total_units"`
	Occupied     int     `json:"occupied"`
	OccupancyPct float64 `json:"occupancy_pct"`
	Potential    float64 `json:"potential"`
	Actual       float64 `json:"actual"`
	Expenses     float64 `json:"expenses"`
	Net          float64 `json:"net"`
}

// PropertySummary computes one dashboard block. expense may be nil when
// nothing was recorded for the period.
func PropertySummary(p models.Property, tenants []models.Tenant, payments []models.Payment, expense *models.Expense, monthYear string) Summary {
	actual := ActualRevenue(payments, monthYear)
	var garden, electrical, other float64
	if expense != nil {
		garden, electrical, other = expense.Garden, expense.Electrical, expense.OtherMaintenance
	}
	return Summary{
		PropertyID:   p.ID,
		Name:         p.Name,
		TotalUnits:   p.TotalUnits,
		Occupied:     len(tenants),
		OccupancyPct: Occupancy(len(tenants), p.TotalUnits),
		Potential:    PotentialRevenue(tenants),
		Actual:       actual,
		Expenses:     garden + electrical + other,
		Net:          Net(actual, garden, electrical, other),
	}
}

// GrandTotal is the bottom line across all properties.
type GrandTotal struct {
	Potential float64 `json:"potential"`
	Actual    float64 `json:"actual"`
	Expenses  float64 `json:"expenses"`
	Net       float64 `json:"net"`
}

// Grand folds per-property summaries into the portfolio total.
func Grand(summaries []Summary) GrandTotal {
	var g GrandTotal
	for _, s := range summaries {
		g.Potential += s.Potential
		g.Actual += s.Actual
		g.Expenses += s.Expenses
	}
	g.Net = g.Actual - g.Expenses
	return g
}
