package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the SQL database backing the sqlite or postgres storage driver
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.StorageDriver {
	case StoragePostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case StorageSQLite:
		dsn := cfg.DatabaseURL
		if dsn == "" {
			// Fallback to a database file next to the other local data
			if err := os.MkdirAll(cfg.StorageDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create storage directory: %w", err)
			}
			dsn = filepath.Join(cfg.StorageDir, "orders.db")
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("storage driver %q does not use a database", cfg.StorageDriver)
	}

	gormConfig := &gorm.Config{}
	if cfg.IsProduction() {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
