package repository

import (
	"context"

	"github.com/ridewave/payment-service/internal/domain/model"
)

type RiderRepository interface {
	// GetByID returns nil without error when no rider mapping exists.
	GetByID(ctx context.Context, riderID string) (*model.Rider, error)
	GetByProviderCustomerID(ctx context.Context, providerCustomerID string) (*model.Rider, error)
	// CreateIfAbsent inserts the mapping unless a row for the same rider ID
	// already exists. Returns false when a concurrent insert won the race.
	CreateIfAbsent(ctx context.Context, rider *model.Rider) (bool, error)
}
