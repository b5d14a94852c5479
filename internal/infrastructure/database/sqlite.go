package database

import (
	"context"
	"fmt"

	"github.com/ak/larder/internal/infrastructure/config"
	"github.com/ak/larder/internal/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLite wraps a gorm connection to a SQLite file
type SQLite struct {
	db     *gorm.DB
	logger *logger.Logger
}

// OpenSQLite opens (creating if needed) the database at cfg.Path and migrates
// the given models
func OpenSQLite(cfg config.SQLiteConfig, log *logger.Logger, models ...interface{}) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", cfg.Path, err)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite %s: %w", cfg.Path, err)
	}

	log = log.WithComponent("sqlite")
	log.Info("Opened SQLite database", zap.String("path", cfg.Path))
	return &SQLite{db: db, logger: log}, nil
}

// DB returns the gorm handle
func (s *SQLite) DB() *gorm.DB {
	return s.db
}

// Close closes the underlying connection pool
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health pings the database
func (s *SQLite) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
