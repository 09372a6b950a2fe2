// Package ledger is the persistence core of the dashboard: it owns the
// database handle, the schema and its migrations, and every typed
// read/write the presentation layer is allowed to perform.
package ledger

import (
	"errors"
	"fmt"

	"alota/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config selects the datastore. Path names a local sqlite file (the
// default deployment); a non-empty DSN switches to Postgres instead.
type Config struct {
	Path   string
	DSN    string
	Logger *zap.SugaredLogger
}

// Store holds its own database handle. Construct one with Open and pass
// it by reference; there is no package-level connection.
type Store struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// Open connects to the configured datastore. It does not touch the
// schema; call Migrate (and usually Seed) before serving.
func Open(cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	var dialector gorm.Dialector
	switch {
	case cfg.DSN != "":
		dialector = postgres.Open(cfg.DSN)
	case cfg.Path != "":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, errors.New("ledger: no datastore configured")
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open datastore: %w", err)
	}
	return &Store{db: db, log: cfg.Logger}, nil
}

// getTenant loads a tenant or reports NotFound.
func (s *Store) getTenant(db *gorm.DB, id uint) (*models.Tenant, error) {
	var t models.Tenant
	if err := db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "tenant", ID: id}
		}
		return nil, storeErr("load tenant", err)
	}
	return &t, nil
}
