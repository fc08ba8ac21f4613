package repository

import (
	"context"
	"errors"

	"github.com/ridewave/payment-service/internal/domain/model"
	"github.com/ridewave/payment-service/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		r.logger.Error("Failed to create payment record",
			zap.Int64("trip_id", payment.TripID),
			zap.String("rider_id", payment.RiderID),
			zap.Error(err))
		return err
	}
	return nil
}

func (r *paymentRepository) GetByTripID(ctx context.Context, tripID int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetRecentByRiderID(ctx context.Context, riderID string, limit int) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("rider_id = ?", riderID).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
