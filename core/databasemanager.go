package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// ParseLogLevel maps DB_LOG_LEVEL values to a LogLevel. Unknown values map to warn.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "info":
		return LogLevelInfo
	default:
		return LogLevelWarn
	}
}

func (l LogLevel) gorm() logger.LogLevel {
	switch l {
	case LogLevelError:
		return logger.Error
	case LogLevelWarn:
		return logger.Warn
	case LogLevelInfo:
		return logger.Info
	case LogLevelSilent:
		return logger.Silent
	default:
		return logger.Info
	}
}

type DatabaseManager struct {
	DB       *gorm.DB
	LogLevel LogLevel
}

// Dialector picks the GORM driver from the DSN shape.
// postgres:// URLs and key=value DSNs use postgres, everything else mysql.
func Dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return postgres.Open(dsn)
	}
	return mysql.Open(dsn)
}

// New opens the global pool (e.g. 10 conns).
func New(dsn string, maxConnection int, level LogLevel) (*DatabaseManager, error) {
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level.gorm()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxConnection)
	sqlDB.SetMaxIdleConns(maxConnection)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	return &DatabaseManager{DB: db, LogLevel: level}, nil
}

// Close closes the global pool
func (dm *DatabaseManager) Close() error {
	sqlDB, err := dm.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns a session bound to ctx.
func (dm *DatabaseManager) GetDB(ctx context.Context) *gorm.DB {
	return dm.DB.WithContext(ctx)
}

func (dm *DatabaseManager) Exec(ctx context.Context, fn func(db *gorm.DB) error) error {
	return fn(dm.GetDB(ctx))
}

// Transaction runs fn inside a database transaction bound to ctx.
func (dm *DatabaseManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return dm.GetDB(ctx).Transaction(fn)
}

// Migrate creates or updates the tables for models.
func (dm *DatabaseManager) Migrate(ctx context.Context, models ...any) error {
	if err := dm.GetDB(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
