package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/ridewave/payment-service/internal/domain/errors"
	"github.com/ridewave/payment-service/internal/domain/model"
	"github.com/ridewave/payment-service/internal/domain/provider"
	"github.com/ridewave/payment-service/internal/domain/repository"
	"go.uber.org/zap"
)

// CustomerService reconciles local rider records with provider-side customer
// identities. Every rider gets exactly one provider customer, created lazily
// on first use.
type CustomerService struct {
	riderRepo repository.RiderRepository
	customers provider.CustomerClient
	logger    *zap.Logger
}

func NewCustomerService(
	riderRepo repository.RiderRepository,
	customers provider.CustomerClient,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		riderRepo: riderRepo,
		customers: customers,
		logger:    logger,
	}
}

// EnsureCustomer returns the provider customer ID for the rider, creating
// the provider customer and the local mapping on first use. Concurrent first
// use by the same rider is resolved by an insert-or-fetch on the rider's
// primary key: the loser reuses the winner's mapping and its provider
// customer is left orphaned on the provider side.
func (s *CustomerService) EnsureCustomer(ctx context.Context, riderID string) (string, error) {
	if riderID == "" {
		return "", domainErrors.ErrInvalidRiderID
	}

	rider, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return "", fmt.Errorf("failed to look up rider %s: %w", riderID, err)
	}
	if rider != nil {
		return rider.ProviderCustomerID, nil
	}

	providerCustomerID, err := s.customers.CreateCustomer(ctx, riderID)
	if err != nil {
		// No local state is written when the provider call fails.
		return "", err
	}

	created, err := s.riderRepo.CreateIfAbsent(ctx, &model.Rider{
		ID:                 riderID,
		ProviderCustomerID: providerCustomerID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to persist rider mapping %s: %w", riderID, err)
	}
	if !created {
		winner, err := s.riderRepo.GetByID(ctx, riderID)
		if err != nil {
			return "", fmt.Errorf("failed to re-read rider mapping %s: %w", riderID, err)
		}
		if winner == nil {
			return "", fmt.Errorf("rider mapping %s vanished after conflicting insert", riderID)
		}
		s.logger.Warn("Concurrent customer creation detected, reusing existing mapping",
			zap.String("rider_id", riderID),
			zap.String("kept_customer_id", winner.ProviderCustomerID),
			zap.String("orphaned_customer_id", providerCustomerID))
		return winner.ProviderCustomerID, nil
	}

	s.logger.Info("Created provider customer for rider",
		zap.String("rider_id", riderID),
		zap.String("provider_customer_id", providerCustomerID))

	return providerCustomerID, nil
}
