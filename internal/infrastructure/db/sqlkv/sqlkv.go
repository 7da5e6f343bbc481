// Package sqlkv stores key-value entries in a single SQL table through GORM.
// SQLite (pure Go driver) and PostgreSQL are supported.
package sqlkv

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the SQL dialect and connection string.
type Config struct {
	Driver string
	DSN    string
}

// Open connects, creates the entries table when missing and returns a Store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("sqlkv: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlkv open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlkv pool: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// one connection keeps ":memory:" databases shared and writes serialised
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlkv ping: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&entry{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlkv create table: %w", err)
	}

	return &Store{db: db, driver: cfg.Driver}, nil
}
