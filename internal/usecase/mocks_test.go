package usecase_test

import (
	"context"

	"github.com/ridewave/payment-service/internal/domain/model"
	"github.com/ridewave/payment-service/internal/domain/provider"
	"github.com/stretchr/testify/mock"
)

// MockRiderRepository is a mock implementation of repository.RiderRepository
type MockRiderRepository struct {
	mock.Mock
}

func (m *MockRiderRepository) GetByID(ctx context.Context, riderID string) (*model.Rider, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetByProviderCustomerID(ctx context.Context, providerCustomerID string) (*model.Rider, error) {
	args := m.Called(ctx, providerCustomerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rider), args.Error(1)
}

func (m *MockRiderRepository) CreateIfAbsent(ctx context.Context, rider *model.Rider) (bool, error) {
	args := m.Called(ctx, rider)
	return args.Bool(0), args.Error(1)
}

// MockPaymentMethodRepository is a mock implementation of repository.PaymentMethodRepository
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) GetChargeable(ctx context.Context, riderID string) (*model.PaymentMethod, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) ListByRider(ctx context.Context, riderID string) ([]*model.PaymentMethod, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) SaveAsDefault(ctx context.Context, method *model.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of repository.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByTripID(ctx context.Context, tripID int64) (*model.Payment, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetRecentByRiderID(ctx context.Context, riderID string, limit int) ([]*model.Payment, error) {
	args := m.Called(ctx, riderID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Payment), args.Error(1)
}

// MockCustomerClient is a mock implementation of provider.CustomerClient
type MockCustomerClient struct {
	mock.Mock
}

func (m *MockCustomerClient) CreateCustomer(ctx context.Context, riderID string) (string, error) {
	args := m.Called(ctx, riderID)
	return args.String(0), args.Error(1)
}

// MockPaymentClient is a mock implementation of provider.PaymentClient
type MockPaymentClient struct {
	mock.Mock
}

func (m *MockPaymentClient) CreateSetupIntent(ctx context.Context, customerID string) (*provider.SetupIntentResult, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SetupIntentResult), args.Error(1)
}

func (m *MockPaymentClient) CreatePaymentIntent(ctx context.Context, req *provider.PaymentIntentRequest) (*provider.PaymentIntentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.PaymentIntentResult), args.Error(1)
}

func (m *MockPaymentClient) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*provider.PaymentMethodDetail, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.PaymentMethodDetail), args.Error(1)
}
