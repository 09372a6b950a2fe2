package ledger

import (
	"strings"

	"alota/models"

	"gorm.io/gorm/clause"
)

// UpsertExpense writes the monthly expense row for a property, inserting
// or overwriting in one statement keyed on the unique
// (property_id, month_year) index. Two concurrent saves for the same key
// cannot produce two rows.
func (s *Store) UpsertExpense(propertyID uint, monthYear string, garden, electrical, otherMaintenance float64) error {
	if strings.TrimSpace(monthYear) == "" {
		return invalidf("month_year", "required")
	}
	if garden < 0 || electrical < 0 || otherMaintenance < 0 {
		return invalidf("amount", "expense amounts cannot be negative")
	}
	if _, err := s.GetProperty(propertyID); err != nil {
		return err
	}
	e := models.Expense{
		PropertyID:       propertyID,
		MonthYear:        monthYear,
		Garden:           garden,
		Electrical:       electrical,
		OtherMaintenance: otherMaintenance,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "property_id"}, {Name: "month_year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"garden", "electrical", "other_maintenance", "updated_at",
		}),
	}).Create(&e).Error
	if err != nil {
		return storeErr("upsert expense", err)
	}
	return nil
}

// ListExpenses returns expense rows newest period label first. Both
// filters are optional; with monthYear set the result has at most one row
// per property.
func (s *Store) ListExpenses(propertyID *uint, monthYear string) ([]models.Expense, error) {
	q := s.db.Order("month_year DESC")
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}
	if monthYear != "" {
		q = q.Where("month_year = ?", monthYear)
	}
	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		return nil, storeErr("list expenses", err)
	}
	return expenses, nil
}

// ExpenseForPeriod returns the single expense row for a property and
// period, or nil when none was recorded.
func (s *Store) ExpenseForPeriod(propertyID uint, monthYear string) (*models.Expense, error) {
	rows, err := s.ListExpenses(&propertyID, monthYear)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
