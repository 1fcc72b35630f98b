package db

import (
	"fmt"
	"time"

	"bank_system/internal/config" // Custom import path (Config)

	"gorm.io/driver/mysql"  // MySQL driver for GORM
	"gorm.io/driver/sqlite" // Embedded SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
	"gorm.io/gorm/logger"   // GORM logger levels
)

// MySQLDSN builds the Data Source Name for a MySQL connection
func MySQLDSN(cfg *config.Config) string {
	return cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
}

// Open connects to the store selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return OpenMySQL(MySQLDSN(cfg), cfg.DBLog)
	case "sqlite", "":
		return OpenSQLite(cfg.DBPath, cfg.DBLog)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

// OpenMySQL opens a MySQL connection pool
func OpenMySQL(dsn string, logMode bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig(logMode))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// OpenSQLite opens the embedded store at path (":memory:" for a throwaway
// database). SQLite serialises writers, so the pool holds one connection;
// that also keeps an in-memory database alive for the life of the pool.
func OpenSQLite(path string, logMode bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(logMode))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	// SQLite performance and reliability tuning
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA busy_timeout = 5000;")
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	return db, nil
}

func gormConfig(logMode bool) *gorm.Config {
	gormLogger := logger.Default
	if !logMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}
	return &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true, // unique violations surface as gorm.ErrDuplicatedKey
	}
}
