package db

import (
	"fmt"

	"bank_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// Migrate creates the five record collections: clients, accounts,
// transactions, users and audit entries
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing constraints, columns and indexes
	err := db.AutoMigrate(
		&domain.Client{},
		&domain.Account{},
		&domain.Transaction{},
		&domain.User{},
		&domain.AuditEntry{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logrus.Debug("Migration completed.")
	return nil
}

// OpenTest opens a migrated in-memory database. Used by tests across packages.
func OpenTest() (*gorm.DB, error) {
	db, err := OpenSQLite(":memory:", false)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
