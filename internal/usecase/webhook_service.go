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

// WebhookService applies verified provider notifications to local state.
type WebhookService struct {
	riderRepo  repository.RiderRepository
	methodRepo repository.PaymentMethodRepository
	processor  provider.PaymentClient
	logger     *zap.Logger
}

func NewWebhookService(
	riderRepo repository.RiderRepository,
	methodRepo repository.PaymentMethodRepository,
	processor provider.PaymentClient,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		riderRepo:  riderRepo,
		methodRepo: methodRepo,
		processor:  processor,
		logger:     logger,
	}
}

// HandleSetupIntentSucceeded records a card the rider finished registering
// with the provider. The event carries only references, so the card brand
// and last4 are fetched from the provider before persisting. The new method
// becomes the rider's default; the previous default is demoted in the same
// transaction. Redelivered events are absorbed by the unique constraint on
// the provider payment method ID.
func (s *WebhookService) HandleSetupIntentSucceeded(ctx context.Context, providerCustomerID, providerPaymentMethodID string) error {
	rider, err := s.riderRepo.GetByProviderCustomerID(ctx, providerCustomerID)
	if err != nil {
		return fmt.Errorf("failed to look up rider for customer %s: %w", providerCustomerID, err)
	}
	if rider == nil {
		// The reconciler creates the mapping before any setup intent is
		// issued, so a missing rider means local state diverged from the
		// provider's.
		s.logger.Error("No rider found for provider customer id",
			zap.String("provider_customer_id", providerCustomerID),
			zap.String("provider_payment_method_id", providerPaymentMethodID))
		return domainErrors.ErrRiderMappingMissing
	}

	detail, err := s.processor.GetPaymentMethod(ctx, providerPaymentMethodID)
	if err != nil {
		return fmt.Errorf("failed to retrieve payment method %s: %w", providerPaymentMethodID, err)
	}

	method := &model.PaymentMethod{
		RiderID:                 rider.ID,
		ProviderPaymentMethodID: providerPaymentMethodID,
		Brand:                   detail.Brand,
		Last4:                   detail.Last4,
		IsDefault:               true,
	}
	if err := s.methodRepo.SaveAsDefault(ctx, method); err != nil {
		return fmt.Errorf("failed to save payment method %s: %w", providerPaymentMethodID, err)
	}

	s.logger.Info("Saved new payment method for rider",
		zap.String("rider_id", rider.ID),
		zap.String("provider_payment_method_id", providerPaymentMethodID),
		zap.String("brand", detail.Brand))

	return nil
}
