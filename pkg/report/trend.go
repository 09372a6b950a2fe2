package report

import "alota/models"

// Expense category display names, matching the original dashboard labels.
const (
	CategoryGarden     = "Garden Service"
	CategoryElectrical = "Electrical"
	CategoryOther      = "Other Maintenance"
)

// TrendPoint is one (period, category, amount) triple in long format,
// ready for a charting frontend.
type TrendPoint struct {
	MonthYear string  `json:"month_year"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
}

// Trend is a property's expense history with per-category and grand totals.
type Trend struct {
	Points         []TrendPoint       `json:"points"`
	CategoryTotals map[string]float64 `json:"category_totals"`
	GrandTotal     float64            `json:"grand_total"`
}

// ExpenseTrend melts expense rows into chartable points, preserving the
// input order of the rows. Each row contributes one point per category.
func ExpenseTrend(expenses []models.Expense) Trend {
	t := Trend{
		Points: make([]TrendPoint, 0, len(expenses)*3),
		CategoryTotals: map[string]float64{
			CategoryGarden:     0,
			CategoryElectrical: 0,
			CategoryOther:      0,
		},
	}
	for _, e := range expenses {
		t.Points = append(t.Points,
			TrendPoint{MonthYear: e.MonthYear, Category: CategoryGarden, Amount: e.Garden},
			TrendPoint{MonthYear: e.MonthYear, Category: CategoryElectrical, Amount: e.Electrical},
			TrendPoint{MonthYear: e.MonthYear, Category: CategoryOther, Amount: e.OtherMaintenance},
		)
		t.CategoryTotals[CategoryGarden] += e.Garden
		t.CategoryTotals[CategoryElectrical] += e.Electrical
		t.CategoryTotals[CategoryOther] += e.OtherMaintenance
	}
	for _, v := range t.CategoryTotals {
		t.GrandTotal += v
	}
	return t
}
