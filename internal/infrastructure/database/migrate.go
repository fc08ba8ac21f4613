package database

import (
	"github.com/ridewave/payment-service/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.Rider{},
		&model.PaymentMethod{},
		&model.Payment{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates partial indexes GORM tags cannot express.
func createCustomIndexes(db *gorm.DB) error {
	// The charge workflow resolves the default method per rider.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_payment_methods_rider_default ON payment_methods (rider_id) WHERE is_default`).Error; err != nil {
		return err
	}

	return nil
}
