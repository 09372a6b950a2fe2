package ledger

import (
	"errors"
	"strings"

	"alota/models"

	"gorm.io/gorm"
)

// AddProperty creates a property and returns its id.
func (s *Store) AddProperty(name string, totalUnits int, location, address string) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, invalidf("name", "required")
	}
	if totalUnits < 1 {
		return 0, invalidf("total_units", "must be at least 1")
	}
	p := models.Property{Name: name, TotalUnits: totalUnits, Location: location, Address: address}
	if err := s.db.Create(&p).Error; err != nil {
		return 0, storeErr("add property", err)
	}
	return p.ID, nil
}

// GetProperty loads one property.
func (s *Store) GetProperty(id uint) (*models.Property, error) {
	var p models.Property
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "property", ID: id}
		}
		return nil, storeErr("load property", err)
	}
	return &p, nil
}

// ListProperties returns all properties ordered by name.
func (s *Store) ListProperties() ([]models.Property, error) {
	var props []models.Property
	if err := s.db.Order("name").Find(&props).Error; err != nil {
		return nil, storeErr("list properties", err)
	}
	return props, nil
}
