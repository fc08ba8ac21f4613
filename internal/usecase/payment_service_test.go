package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/ridewave/payment-service/internal/domain/errors"
	"github.com/ridewave/payment-service/internal/domain/model"
	"github.com/ridewave/payment-service/internal/domain/provider"
	"github.com/ridewave/payment-service/internal/usecase"
)

type paymentServiceMocks struct {
	riderRepo   *MockRiderRepository
	methodRepo  *MockPaymentMethodRepository
	paymentRepo *MockPaymentRepository
	customers   *MockCustomerClient
	processor   *MockPaymentClient
}

func newPaymentService(t *testing.T) (*usecase.PaymentService, *paymentServiceMocks) {
	t.Helper()
	m := &paymentServiceMocks{
		riderRepo:   new(MockRiderRepository),
		methodRepo:  new(MockPaymentMethodRepository),
		paymentRepo: new(MockPaymentRepository),
		customers:   new(MockCustomerClient),
		processor:   new(MockPaymentClient),
	}
	logger := zap.NewNop()
	customerService := usecase.NewCustomerService(m.riderRepo, m.customers, logger)
	service := usecase.NewPaymentService(customerService, m.riderRepo, m.methodRepo, m.paymentRepo, m.processor, logger)
	return service, m
}

func TestPaymentService_CreateSetupIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("first-time rider gets mapping and secret", func(t *testing.T) {
		service, m := newPaymentService(t)

		m.riderRepo.On("GetByID", ctx, "r1").Return(nil, nil)
		m.customers.On("CreateCustomer", ctx, "r1").Return("cus_fresh", nil)
		m.riderRepo.On("CreateIfAbsent", ctx, mock.MatchedBy(func(r *model.Rider) bool {
			return r.ID == "r1" && r.ProviderCustomerID == "cus_fresh"
		})).Return(true, nil)
		m.processor.On("CreateSetupIntent", ctx, "cus_fresh").Return(&provider.SetupIntentResult{
			ID:           "seti_1",
			ClientSecret: "seti_1_secret_abc",
		}, nil)

		secret, err := service.CreateSetupIntent(ctx, "r1")

		assert.NoError(t, err)
		assert.NotEmpty(t, secret)
		assert.Equal(t, "seti_1_secret_abc", secret)
		m.riderRepo.AssertExpectations(t)
		m.processor.AssertExpectations(t)
	})

	t.Run("provider failure propagates with no local write", func(t *testing.T) {
		service, m := newPaymentService(t)

		provErr := &provider.ProviderError{Code: "invalid_request_error", Message: "bad customer"}
		m.riderRepo.On("GetByID", ctx, "r1").Return(&model.Rider{ID: "r1", ProviderCustomerID: "cus_1"}, nil)
		m.processor.On("CreateSetupIntent", ctx, "cus_1").Return(nil, provErr)

		_, err := service.CreateSetupIntent(ctx, "r1")

		assert.ErrorIs(t, err, provErr)
	})
}

func TestPaymentService_ChargeTrip(t *testing.T) {
	ctx := context.Background()

	rider := &model.Rider{ID: "r1", ProviderCustomerID: "cus_1"}
	method := &model.PaymentMethod{
		ID:                      1,
		RiderID:                 "r1",
		ProviderPaymentMethodID: "pm_1",
		Brand:                   "visa",
		Last4:                   "4242",
		IsDefault:               true,
	}

	input := usecase.ChargeTripInput{
		TripID:      42,
		RiderID:     "r1",
		AmountCents: 500,
		Currency:    "usd",
	}

	t.Run("unknown rider fails without a payment row", func(t *testing.T) {
		service, m := newPaymentService(t)

		m.paymentRepo.On("GetByTripID", ctx, int64(42)).Return(nil, nil)
		m.riderRepo.On("GetByID", ctx, "r1").Return(nil, nil)

		_, err := service.ChargeTrip(ctx, input)

		assert.ErrorIs(t, err, domainErrors.ErrRiderNotFound)
		m.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("no saved method fails without a payment row", func(t *testing.T) {
		service, m := newPaymentService(t)

		m.paymentRepo.On("GetByTripID", ctx, int64(42)).Return(nil, nil)
		m.riderRepo.On("GetByID", ctx, "r1").Return(rider, nil)
		m.methodRepo.On("GetChargeable", ctx, "r1").Return(nil, nil)

		_, err := service.ChargeTrip(ctx, input)

		assert.ErrorIs(t, err, domainErrors.ErrNoPaymentMethod)
		m.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("upstream failure records FAILED with requested amount", func(t *testing.T) {
		service, m := newPaymentService(t)

		provErr := &provider.ProviderError{Code: "card_declined", Message: "Your card was declined."}
		m.paymentRepo.On("GetByTripID", ctx, int64(42)).Return(nil, nil)
		m.riderRepo.On("GetByID", ctx, "r1").Return(rider, nil)
		m.methodRepo.On("GetChargeable", ctx, "r1").Return(method, nil)
		m.processor.On("CreatePaymentIntent", ctx, mock.Anything).Return(nil, provErr)
		m.paymentRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Payment) bool {
			return p.TripID == 42 &&
				p.Status == model.PaymentStatusFailed &&
				p.ProviderPaymentIntentID == nil &&
				p.AmountCents == 500 &&
				p.Currency == "usd"
		})).Return(nil).Once()

		_, err := service.ChargeTrip(ctx, input)

		assert.ErrorIs(t, err, provErr)
		m.paymentRepo.AssertExpectations(t)
	})

	t.Run("succeeded charge records SUCCEEDED with provider amounts", func(t *testing.T) {
		service, m := newPaymentService(t)

		m.paymentRepo.On("GetByTripID", ctx, int64(42)).Return(nil, nil)
		m.riderRepo.On("GetByID", ctx, "r1").Return(rider, nil)
		m.methodRepo.On("GetChargeable", ctx, "r1").Return(method, nil)
		m.processor.On("CreatePaymentIntent", ctx, mock.MatchedBy(func(req *provider.PaymentIntentRequest) bool {
			return req.TripID == 42 &&
				req.CustomerID == "cus_1" &&
				req.PaymentMethodID == "pm_1" &&
				req.AmountCents == 500 &&
				req.Currency == "usd" &&
				req.IdempotencyKey != ""
		})).Return(&provider.PaymentIntentResult{
			ID:          "pi_1",
			Status:      "succeeded",
			AmountCents: 500,
			Currency:    "usd",
		}, nil)
		m.paymentRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Payment) bool {
			return p.TripID == 42 &&
				p.Status == model.PaymentStatusSucceeded &&
				p.ProviderPaymentIntentID != nil &&
				*p.ProviderPaymentIntentID == "pi_1" &&
				p.AmountCents == 500
		})).Return(nil).Once()

		status, err := service.ChargeTrip(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusSucceeded, status)
		m.processor.AssertExpectations(t)
		m.paymentRepo.AssertExpectations(t)
	})

	t.Run("non-succeeded provider status records FAILED", func(t *testing.T) {
		service, m := newPaymentService(t)

		m.paymentRepo.On("GetByTripID", ctx, int64(42)).Return(nil, nil)
		m.riderRepo.On("GetByID", ctx, "r1").Return(rider, nil)
		m.methodRepo.On("GetChargeable", ctx, "r1").Return(method, nil)
		m.processor.On("CreatePaymentIntent", ctx, mock.Anything).Return(&provider.PaymentIntentResult{
			ID:          "pi_2",
			Status:      "requires_action",
			AmountCents: 500,
			Currency:    "usd",
		}, nil)
		m.paymentRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Payment) bool {
			return p.Status == model.PaymentStatusFailed &&
				p.ProviderPaymentIntentID != nil &&
				*p.ProviderPaymentIntentID == "pi_2"
		})).Return(nil).Once()

		status, err := service.ChargeTrip(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, status)
	})

	t.Run("provider amount wins over requested amount", func(t *testing.T) {
		service, m := newPaymentService(t)

		m.paymentRepo.On("GetByTripID", ctx, int64(42)).Return(nil, nil)
		m.riderRepo.On("GetByID", ctx, "r1").Return(rider, nil)
		m.methodRepo.On("GetChargeable", ctx, "r1").Return(method, nil)
		m.processor.On("CreatePaymentIntent", ctx, mock.Anything).Return(&provider.PaymentIntentResult{
			ID:          "pi_3",
			Status:      "succeeded",
			AmountCents: 450,
			Currency:    "usd",
		}, nil)
		m.paymentRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Payment) bool {
			return p.AmountCents == 450
		})).Return(nil).Once()

		_, err := service.ChargeTrip(ctx, input)

		assert.NoError(t, err)
		m.paymentRepo.AssertExpectations(t)
	})

	t.Run("already-charged trip returns recorded outcome without a provider call", func(t *testing.T) {
		service, m := newPaymentService(t)

		intentID := "pi_prev"
		m.paymentRepo.On("GetByTripID", ctx, int64(42)).Return(&model.Payment{
			TripID:                  42,
			RiderID:                 "r1",
			ProviderPaymentIntentID: &intentID,
			AmountCents:             500,
			Currency:                "usd",
			Status:                  model.PaymentStatusSucceeded,
		}, nil)

		status, err := service.ChargeTrip(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusSucceeded, status)
		m.processor.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
		m.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid input is rejected before any lookup", func(t *testing.T) {
		service, m := newPaymentService(t)

		_, err := service.ChargeTrip(ctx, usecase.ChargeTripInput{TripID: 42, RiderID: "r1", AmountCents: 0, Currency: "usd"})
		assert.Error(t, err)

		_, err = service.ChargeTrip(ctx, usecase.ChargeTripInput{TripID: 42, RiderID: "", AmountCents: 500, Currency: "usd"})
		assert.ErrorIs(t, err, domainErrors.ErrInvalidRiderID)

		m.riderRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_ListPaymentMethods(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown rider is not found", func(t *testing.T) {
		service, m := newPaymentService(t)

		m.riderRepo.On("GetByID", ctx, "ghost").Return(nil, nil)

		_, err := service.ListPaymentMethods(ctx, "ghost")

		assert.ErrorIs(t, err, domainErrors.ErrRiderNotFound)
	})

	t.Run("returns methods default first", func(t *testing.T) {
		service, m := newPaymentService(t)

		methods := []*model.PaymentMethod{
			{ProviderPaymentMethodID: "pm_2", Brand: "mastercard", Last4: "4444", IsDefault: true},
			{ProviderPaymentMethodID: "pm_1", Brand: "visa", Last4: "4242", IsDefault: false},
		}
		m.riderRepo.On("GetByID", ctx, "r1").Return(&model.Rider{ID: "r1", ProviderCustomerID: "cus_1"}, nil)
		m.methodRepo.On("ListByRider", ctx, "r1").Return(methods, nil)

		result, err := service.ListPaymentMethods(ctx, "r1")

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.True(t, result[0].IsDefault)
	})
}

func TestPaymentService_ListRecentPayments(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown rider is not found", func(t *testing.T) {
		service, m := newPaymentService(t)

		m.riderRepo.On("GetByID", ctx, "ghost").Return(nil, nil)

		_, err := service.ListRecentPayments(ctx, "ghost", 20)

		assert.ErrorIs(t, err, domainErrors.ErrRiderNotFound)
		m.paymentRepo.AssertNotCalled(t, "GetRecentByRiderID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns recorded charges", func(t *testing.T) {
		service, m := newPaymentService(t)

		intentID := "pi_1"
		payments := []*model.Payment{
			{TripID: 43, RiderID: "r1", AmountCents: 700, Currency: "usd", Status: model.PaymentStatusFailed},
			{TripID: 42, RiderID: "r1", ProviderPaymentIntentID: &intentID, AmountCents: 500, Currency: "usd", Status: model.PaymentStatusSucceeded},
		}
		m.riderRepo.On("GetByID", ctx, "r1").Return(&model.Rider{ID: "r1", ProviderCustomerID: "cus_1"}, nil)
		m.paymentRepo.On("GetRecentByRiderID", ctx, "r1", 2).Return(payments, nil)

		result, err := service.ListRecentPayments(ctx, "r1", 2)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, int64(43), result[0].TripID)
	})
}
