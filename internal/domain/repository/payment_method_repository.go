package repository

import (
	"context"

	"github.com/ridewave/payment-service/internal/domain/model"
)

type PaymentMethodRepository interface {
	// GetChargeable returns the method the charge workflow should use:
	// the rider's default method, or the most recently added one when no
	// default exists. Nil without error when the rider has no methods.
	GetChargeable(ctx context.Context, riderID string) (*model.PaymentMethod, error)
	// ListByRider returns the rider's methods ordered default-first,
	// then newest-first.
	ListByRider(ctx context.Context, riderID string) ([]*model.PaymentMethod, error)
	// SaveAsDefault persists a newly registered method as the rider's
	// default, demoting any previous default in the same transaction.
	// Saving the same provider payment method ID twice is a no-op.
	SaveAsDefault(ctx context.Context, method *model.PaymentMethod) error
}
