package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sandpay-io/sandpay/internal/infrastructure/persistence/models"
	sharedConfig "github.com/sandpay-io/sandpay/internal/shared/config"
)

// Init opens the sqlite database and migrates the gateway schema.
// Only called when storage.driver is "sqlite".
func Init(cfg *sharedConfig.StorageConfig) (*gorm.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = "sandpay.db"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", dsn, err)
	}

	if err := db.AutoMigrate(
		&models.OrderModel{},
		&models.TransactionModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
