package database

import (
	adapterRepo "github.com/ridewave/payment-service/internal/adapter/repository"
	domainRepo "github.com/ridewave/payment-service/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Rider         domainRepo.RiderRepository
	PaymentMethod domainRepo.PaymentMethodRepository
	Payment       domainRepo.PaymentRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Rider:         adapterRepo.NewRiderRepository(db),
		PaymentMethod: adapterRepo.NewPaymentMethodRepository(db),
		Payment:       adapterRepo.NewPaymentRepository(db, logger),
	}
}
