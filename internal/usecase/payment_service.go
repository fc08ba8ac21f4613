package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	domainErrors "github.com/ridewave/payment-service/internal/domain/errors"
	"github.com/ridewave/payment-service/internal/domain/model"
	"github.com/ridewave/payment-service/internal/domain/provider"
	"github.com/ridewave/payment-service/internal/domain/repository"
	"go.uber.org/zap"
)

// PaymentService implements the setup and charge workflows.
type PaymentService struct {
	customerService *CustomerService
	riderRepo       repository.RiderRepository
	methodRepo      repository.PaymentMethodRepository
	paymentRepo     repository.PaymentRepository
	processor       provider.PaymentClient
	logger          *zap.Logger
}

func NewPaymentService(
	customerService *CustomerService,
	riderRepo repository.RiderRepository,
	methodRepo repository.PaymentMethodRepository,
	paymentRepo repository.PaymentRepository,
	processor provider.PaymentClient,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		customerService: customerService,
		riderRepo:       riderRepo,
		methodRepo:      methodRepo,
		paymentRepo:     paymentRepo,
		processor:       processor,
		logger:          logger,
	}
}

// CreateSetupIntent returns the client secret the rider's app hands to the
// embedded provider SDK to register a card. The card data itself never
// passes through this service.
func (s *PaymentService) CreateSetupIntent(ctx context.Context, riderID string) (string, error) {
	providerCustomerID, err := s.customerService.EnsureCustomer(ctx, riderID)
	if err != nil {
		return "", err
	}

	result, err := s.processor.CreateSetupIntent(ctx, providerCustomerID)
	if err != nil {
		return "", err
	}

	s.logger.Info("Created setup intent",
		zap.String("rider_id", riderID),
		zap.String("setup_intent_id", result.ID))

	return result.ClientSecret, nil
}

// ChargeTripInput describes a charge request for a completed trip.
type ChargeTripInput struct {
	TripID      int64
	RiderID     string
	AmountCents int64
	Currency    string
}

func (in *ChargeTripInput) validate() error {
	if in.RiderID == "" {
		return domainErrors.ErrInvalidRiderID
	}
	if in.TripID <= 0 {
		return errors.New("trip id is required")
	}
	if in.AmountCents <= 0 {
		return errors.New("invalid charge amount")
	}
	if in.Currency == "" {
		return errors.New("currency is required")
	}
	return nil
}

// ChargeTrip charges the rider's saved payment method off-session and
// records the outcome. The rider must already be reconciled: a missing
// mapping here means the rider never completed card setup, so there is no
// lazy customer creation.
func (s *PaymentService) ChargeTrip(ctx context.Context, in ChargeTripInput) (model.PaymentStatus, error) {
	if err := in.validate(); err != nil {
		return "", err
	}

	// A trip is charged at most once. Retries return the recorded outcome
	// instead of hitting the provider again.
	if existing, err := s.paymentRepo.GetByTripID(ctx, in.TripID); err != nil {
		return "", fmt.Errorf("failed to look up payment for trip %d: %w", in.TripID, err)
	} else if existing != nil {
		s.logger.Info("Trip already charged, returning recorded outcome",
			zap.Int64("trip_id", in.TripID),
			zap.String("status", string(existing.Status)))
		return existing.Status, nil
	}

	rider, err := s.riderRepo.GetByID(ctx, in.RiderID)
	if err != nil {
		return "", fmt.Errorf("failed to look up rider %s: %w", in.RiderID, err)
	}
	if rider == nil {
		return "", domainErrors.ErrRiderNotFound
	}

	method, err := s.methodRepo.GetChargeable(ctx, in.RiderID)
	if err != nil {
		return "", fmt.Errorf("failed to look up payment method for rider %s: %w", in.RiderID, err)
	}
	if method == nil {
		return "", domainErrors.ErrNoPaymentMethod
	}

	result, err := s.processor.CreatePaymentIntent(ctx, &provider.PaymentIntentRequest{
		TripID:          in.TripID,
		CustomerID:      rider.ProviderCustomerID,
		PaymentMethodID: method.ProviderPaymentMethodID,
		AmountCents:     in.AmountCents,
		Currency:        in.Currency,
		IdempotencyKey:  uuid.NewString(),
	})
	if err != nil {
		// Record the failed attempt as an audit trail, then re-signal the
		// provider's error. The requested amount is kept since the provider
		// reported none.
		failed := &model.Payment{
			TripID:      in.TripID,
			RiderID:     in.RiderID,
			AmountCents: in.AmountCents,
			Currency:    in.Currency,
			Status:      model.PaymentStatusFailed,
		}
		if recordErr := s.paymentRepo.Create(ctx, failed); recordErr != nil {
			s.logger.Error("Failed to record failed charge attempt",
				zap.Int64("trip_id", in.TripID),
				zap.Error(recordErr))
		}
		return "", err
	}

	status := model.PaymentStatusFailed
	if result.Status == "succeeded" {
		status = model.PaymentStatusSucceeded
	}

	// Amount and currency come from the provider response in case of
	// partial capture or rounding.
	payment := &model.Payment{
		TripID:                  in.TripID,
		RiderID:                 in.RiderID,
		ProviderPaymentIntentID: &result.ID,
		AmountCents:             result.AmountCents,
		Currency:                result.Currency,
		Status:                  status,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return "", fmt.Errorf("charge completed but recording payment failed: %w", err)
	}

	s.logger.Info("Recorded trip charge",
		zap.Int64("trip_id", in.TripID),
		zap.String("rider_id", in.RiderID),
		zap.String("payment_intent_id", result.ID),
		zap.String("status", string(status)))

	return status, nil
}

// ListRecentPayments returns the rider's latest charges, newest first.
func (s *PaymentService) ListRecentPayments(ctx context.Context, riderID string, limit int) ([]*model.Payment, error) {
	if riderID == "" {
		return nil, domainErrors.ErrInvalidRiderID
	}

	rider, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up rider %s: %w", riderID, err)
	}
	if rider == nil {
		return nil, domainErrors.ErrRiderNotFound
	}

	return s.paymentRepo.GetRecentByRiderID(ctx, riderID, limit)
}

// ListPaymentMethods returns the rider's saved methods, default first.
func (s *PaymentService) ListPaymentMethods(ctx context.Context, riderID string) ([]*model.PaymentMethod, error) {
	if riderID == "" {
		return nil, domainErrors.ErrInvalidRiderID
	}

	rider, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up rider %s: %w", riderID, err)
	}
	if rider == nil {
		return nil, domainErrors.ErrRiderNotFound
	}

	return s.methodRepo.ListByRider(ctx, riderID)
}
