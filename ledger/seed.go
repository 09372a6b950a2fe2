package ledger

import (
	"alota/models"

	"golang.org/x/crypto/bcrypt"
)

// The portfolio the dashboard was built for. Loaded once into an empty
// database; after that properties are managed through the API.
var seedProperties = []models.Property{
	{Name: "LE SOUVENIR (1168)", TotalUnits: 10, Location: "Bloemfontein Area", Address: "Farm 1168"},
	{Name: "Farm 222", TotalUnits: 8, Location: "Bloemfontein Area", Address: "Farm 222"},
	{Name: "15 Buitekant Straat 874", TotalUnits: 4, Location: "Brandfort", Address: "15 Buitekant Straat 874, Brandfort"},
	{Name: "3638 Mothibi 874", TotalUnits: 1, Location: "Bloemfontein", Address: "4 Room House, Mothibi 874, Bloemfontein"},
	{Name: "Little Blackwood", TotalUnits: 5, Location: "Zimbabwe", Address: "Plot Little Blackwood, Zimbabwe"},
	{Name: "43 Golfcourse Road", TotalUnits: 6, Location: "Walkerville", Address: "43 Golfcourse Road, Walkerville"},
	{Name: "Midrand Apartment", TotalUnits: 2, Location: "Midrand", Address: "Apartment in Midrand"},
}

// Seed loads the initial properties when the table is empty and makes
// sure the landlord login exists. Safe to call on every start.
func (s *Store) Seed() error {
	var count int64
	if err := s.db.Model(&models.Property{}).Count(&count).Error; err != nil {
		return storeErr("count properties", err)
	}
	if count == 0 {
		props := make([]models.Property, len(seedProperties))
		copy(props, seedProperties)
		if err := s.db.Create(&props).Error; err != nil {
			return storeErr("seed properties", err)
		}
		s.log.Infow("seeded properties", "count", len(seedProperties))
	}

	if err := s.db.Model(&models.User{}).Where("username = ?", "landlord").Count(&count).Error; err != nil {
		return storeErr("count users", err)
	}
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("landlord123"), bcrypt.DefaultCost)
		if err != nil {
			return storeErr("hash password", err)
		}
		user := models.User{Username: "landlord", HashedPassword: hashed}
		if err := s.db.Create(&user).Error; err != nil {
			return storeErr("seed user", err)
		}
		s.log.Infow("seeded landlord login", "username", "landlord", "password", "landlord123")
	}
	return nil
}

// UserByUsername loads the landlord account for login checks.
func (s *Store) UserByUsername(username string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, storeErr("load user", err)
	}
	return &u, nil
}
