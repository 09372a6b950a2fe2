package ledger

import (
	"strings"

	"alota/models"

	"gorm.io/gorm"
)

// TenantUpdate carries the editable tenant fields, applied as a whole.
type TenantUpdate struct {
	Name  string
	Unit  string
	Rent  float64
	Email string
	Phone string
}

// AddTenant creates a tenant under a property and returns the new id.
func (s *Store) AddTenant(propertyID uint, name, unit string, rent float64, email, phone string) (uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, invalidf("name", "required")
	}
	if rent <= 0 {
		return 0, invalidf("rent", "must be greater than 0")
	}
	if _, err := s.GetProperty(propertyID); err != nil {
		return 0, err
	}
	t := models.Tenant{
		PropertyID: propertyID,
		Name:       name,
		Unit:       unit,
		Rent:       rent,
		Email:      email,
		Phone:      phone,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return 0, storeErr("add tenant", err)
	}
	return t.ID, nil
}

// UpdateTenant replaces the editable fields of an existing tenant.
func (s *Store) UpdateTenant(id uint, upd TenantUpdate) error {
	upd.Name = strings.TrimSpace(upd.Name)
	if upd.Name == "" {
		return invalidf("name", "required")
	}
	if upd.Rent <= 0 {
		return invalidf("rent", "must be greater than 0")
	}
	t, err := s.getTenant(s.db, id)
	if err != nil {
		return err
	}
	err = s.db.Model(t).Select("name", "unit", "rent", "email", "phone").Updates(models.Tenant{
		Name:  upd.Name,
		Unit:  upd.Unit,
		Rent:  upd.Rent,
		Email: upd.Email,
		Phone: upd.Phone,
	}).Error
	if err != nil {
		return storeErr("update tenant", err)
	}
	return nil
}

// DeleteTenant removes a tenant together with its payments, notes and the
// photos attached to those notes, all in one transaction. A nonexistent
// id reports NotFound and deletes nothing.
func (s *Store) DeleteTenant(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.getTenant(tx, id); err != nil {
			return err
		}
		noteIDs := tx.Model(&models.Note{}).Select("id").Where("tenant_id = ?", id)
		if err := tx.Where("note_id IN (?)", noteIDs).Delete(&models.Photo{}).Error; err != nil {
			return storeErr("delete tenant photos", err)
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return storeErr("delete tenant notes", err)
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return storeErr("delete tenant payments", err)
		}
		if err := tx.Delete(&models.Tenant{}, id).Error; err != nil {
			return storeErr("delete tenant", err)
		}
		return nil
	})
}

// GetTenant loads one tenant.
func (s *Store) GetTenant(id uint) (*models.Tenant, error) {
	return s.getTenant(s.db, id)
}

// ListTenants returns tenants ordered by name, optionally restricted to
// one property.
func (s *Store) ListTenants(propertyID *uint) ([]models.Tenant, error) {
	q := s.db.Order("name")
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}
	var tenants []models.Tenant
	if err := q.Find(&tenants).Error; err != nil {
		return nil, storeErr("list tenants", err)
	}
	return tenants, nil
}

// SearchTenants matches name or unit against a substring.
func (s *Store) SearchTenants(term string) ([]models.Tenant, error) {
	like := "%" + term + "%"
	var tenants []models.Tenant
	err := s.db.Where("name LIKE ? OR unit LIKE ?", like, like).Order("name").Find(&tenants).Error
	if err != nil {
		return nil, storeErr("search tenants", err)
	}
	return tenants, nil
}
