package repository

import (
	"fmt"

	"contentgenius/internal/app/ds"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Repository struct {
	db *gorm.DB
}

// Dialector picks the gorm driver for a configured database backend.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func New(driver, dsn string) (*Repository, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	return Open(dialector, logger.Warn)
}

// Open connects through an explicit dialector and migrates every table.
func Open(dialector gorm.Dialector, level logger.LogLevel) (*Repository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	r := &Repository{db: db}
	if err := r.Migrate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) Migrate() error {
	err := r.db.AutoMigrate(
		&ds.User{},
		&ds.ContentTemplate{},
		&ds.Order{},
		&ds.Payment{},
		&ds.Content{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// lockForUpdate adds a row lock on dialects that support SELECT ... FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == DriverSQLite {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
