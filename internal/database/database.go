package database

import (
	"fmt"
	"time"

	"calltime-backend/internal/database/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel        logger.LogLevel
	BusyTimeout     time.Duration
	ConnMaxLifetime time.Duration
	SkipMigration   bool
}

// Initialize opens the SQLite store, ensures the base schema from the GORM
// models and then runs the legacy schema migrator. SQLite is a single-writer
// store; WAL mode lets readers proceed while a transaction is open, and the
// busy timeout is the only lock-wait tuning the core needs.
func Initialize(path string, opts *Options) (*gorm.DB, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Error
	}
	if opts.BusyTimeout == 0 {
		opts.BusyTimeout = 5 * time.Second
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on",
		path, opts.BusyTimeout.Milliseconds())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		// SQLite allows one writer; extra connections only contend.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	all := []interface{}{
		&models.Client{},
		&models.Donor{},
		&models.Assignment{},
		&models.Contribution{},
		&models.CallOutcome{},
		&models.Research{},
		&models.DonorNote{},
	}
	if err := db.AutoMigrate(all...); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	if !opts.SkipMigration {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}
