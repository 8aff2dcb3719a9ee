package models

import (
	"fmt"
	"os"
	"path/filepath"

	"task-api/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB global database handle
var DB *gorm.DB

// InitDB opens the configured database and migrates it when enabled
func InitDB(cfg *config.Config) error {
	dsn := cfg.Database.Path
	if cfg.Database.Driver == "postgres" {
		dsn = cfg.Database.DSN
	} else if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	db, err := Open(cfg.Database.Driver, dsn)
	if err != nil {
		return err
	}
	DB = db

	if cfg.Database.AutoMigrate {
		return AutoMigrate(DB)
	}
	return nil
}

// Open connects to sqlite or postgres
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Profile{},
		&Task{},
		&Category{},
		&TaskCategory{},
		&TaskFavorite{},
	)
}

// GetDB returns the global database handle
func GetDB() *gorm.DB {
	return DB
}
