package database

import (
	"fmt"

	"github.com/AcebergChristian/jushuitan-sub000/internal/config"
	"github.com/AcebergChristian/jushuitan-sub000/internal/logger"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection opens the PostgreSQL pool and migrates the schema
func NewConnection(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(log, cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		log.Warn("failed to auto-migrate models", zap.Error(err))
	}
	return db, nil
}

// Migrate creates or updates every table the service owns
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.OrderRecord{},
		&model.GoodsAggregate{},
		&model.StoreAggregate{},
		&model.AdSpend{},
		&model.BillRecord{},
		&model.AuditLog{},
	)
}
