package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// connParams is appended to the DSN so every pooled connection gets the same
// settings; pragmas issued over a single connection would not reach the
// others. WAL lets month-view reads proceed while a payment is being
// written, busy_timeout makes concurrent writers queue instead of failing
// with SQLITE_BUSY.
const connParams = "_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_busy_timeout=5000"

// Init opens the SQLite database.
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	gormLogger := logger.Default
	if !cfg.LogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	dsn := fmt.Sprintf("file:%s?%s", cfg.Path, connParams)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// SQLite serializes writes on the single database file: one effective
	// writer plus a few WAL readers is all the pool can use.
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}
