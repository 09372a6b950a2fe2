package ledger

import (
	"fmt"
	"time"

	"alota/models"

	"gorm.io/gorm"
)

// schemaMigration records an applied step so each one runs exactly once
// per database, in order.
type schemaMigration struct {
	ID        uint `gorm:"primaryKey"`
	Version   int  `gorm:"uniqueIndex;not null"`
	Name      string
	AppliedAt time.Time
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type migrationStep struct {
	version int
	name    string
	run     func(tx *gorm.DB) error
}

// Steps are append-only. Each must be idempotent: a legacy tenants.db from
// the old tracker and a fresh file both end up at the same schema.
var migrationSteps = []migrationStep{
	{
		version: 1,
		name:    "base tables",
		run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(
				&models.Property{},
				&models.Tenant{},
				&models.Payment{},
				&models.Note{},
				&models.Photo{},
				&models.User{},
			)
		},
	},
	{
		version: 2,
		name:    "expenses with unique (property_id, month_year)",
		run: func(tx *gorm.DB) error {
			// Legacy databases could hold duplicate rows for one key;
			// keep the newest of each pair so the unique index can build.
			if tx.Migrator().HasTable("expenses") {
				err := tx.Exec(`DELETE FROM expenses WHERE id NOT IN (
					SELECT MAX(id) FROM expenses GROUP BY property_id, month_year)`).Error
				if err != nil {
					return err
				}
			}
			return tx.AutoMigrate(&models.Expense{})
		},
	},
	{
		version: 3,
		name:    "backfill denormalized property ids",
		run: func(tx *gorm.DB) error {
			// Old rows written before the property_id columns existed.
			stmts := []string{
				`UPDATE payments SET property_id = (SELECT property_id FROM tenants WHERE tenants.id = payments.tenant_id)
					WHERE property_id IS NULL OR property_id = 0`,
				`UPDATE notes SET property_id = (SELECT property_id FROM tenants WHERE tenants.id = notes.tenant_id)
					WHERE property_id IS NULL OR property_id = 0`,
				`UPDATE maintenance_photos SET property_id = (SELECT property_id FROM notes WHERE notes.id = maintenance_photos.note_id)
					WHERE property_id IS NULL OR property_id = 0`,
			}
			for _, stmt := range stmts {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// Migrate applies any unapplied steps in version order, recording each in
// schema_migrations inside the same transaction as the step itself.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&schemaMigration{}); err != nil {
		return storeErr("migrate bookkeeping", err)
	}
	for _, step := range migrationSteps {
		var applied int64
		err := s.db.Model(&schemaMigration{}).Where("version = ?", step.version).Count(&applied).Error
		if err != nil {
			return storeErr("check migration", err)
		}
		if applied > 0 {
			continue
		}
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := step.run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{
				Version:   step.version,
				Name:      step.name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return storeErr(fmt.Sprintf("migration %d (%s)", step.version, step.name), err)
		}
		s.log.Infow("applied migration", "version", step.version, "name", step.name)
	}
	return nil
}
