package repository

import (
	"context"

	"github.com/ridewave/payment-service/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByTripID(ctx context.Context, tripID int64) (*model.Payment, error)
	GetRecentByRiderID(ctx context.Context, riderID string, limit int) ([]*model.Payment, error)
}
