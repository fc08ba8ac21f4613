package stripe

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/ridewave/payment-service/internal/domain/provider"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// Client implements the provider.CustomerClient and provider.PaymentClient
// interfaces against the Stripe API. The API key is injected at construction
// rather than set process-wide.
type Client struct {
	api     *client.API
	timeout time.Duration
	logger  *zap.Logger
}

func NewClient(secretKey string, timeout time.Duration, logger *zap.Logger) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Client{
		api:     api,
		timeout: timeout,
		logger:  logger,
	}
}

// callContext bounds every outbound call so a slow provider cannot hold a
// request indefinitely.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// CreateCustomer creates a Stripe customer. The rider ID travels as opaque
// metadata only; Stripe assigns its own identity key.
func (c *Client) CreateCustomer(ctx context.Context, riderID string) (string, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	}
	params.AddMetadata("app_rider_id", riderID)

	cust, err := c.api.Customers.New(params)
	if err != nil {
		c.logger.Error("Stripe customer creation failed",
			zap.String("rider_id", riderID),
			zap.Error(err))
		return "", wrapStripeError(err)
	}
	return cust.ID, nil
}

// CreateSetupIntent creates a card-only setup intent with off-session usage
// declared, so a later charge can be made without the cardholder present.
func (c *Client) CreateSetupIntent(ctx context.Context, customerID string) (*provider.SetupIntentResult, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	params := &stripe.SetupIntentParams{
		Params:             stripe.Params{Context: ctx},
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Usage:              stripe.String(string(stripe.SetupIntentUsageOffSession)),
	}

	intent, err := c.api.SetupIntents.New(params)
	if err != nil {
		c.logger.Error("Stripe setup intent creation failed",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, wrapStripeError(err)
	}

	return &provider.SetupIntentResult{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
	}, nil
}

// CreatePaymentIntent creates and confirms an off-session charge in one
// call. The trip ID is attached as metadata for auditability.
func (c *Client) CreatePaymentIntent(ctx context.Context, req *provider.PaymentIntentRequest) (*provider.PaymentIntentResult, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(req.Currency),
		Customer:      stripe.String(req.CustomerID),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		OffSession:    stripe.Bool(true),
		Confirm:       stripe.Bool(true),
	}
	params.AddMetadata("app_trip_id", strconv.FormatInt(req.TripID, 10))
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.logger.Error("Stripe payment intent creation failed",
			zap.Int64("trip_id", req.TripID),
			zap.String("customer_id", req.CustomerID),
			zap.Error(err))
		return nil, wrapStripeError(err)
	}

	return &provider.PaymentIntentResult{
		ID:          intent.ID,
		Status:      string(intent.Status),
		AmountCents: intent.Amount,
		Currency:    string(intent.Currency),
	}, nil
}

// GetPaymentMethod fetches the card detail behind a payment method ID.
func (c *Client) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*provider.PaymentMethodDetail, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	params := &stripe.PaymentMethodParams{
		Params: stripe.Params{Context: ctx},
	}

	method, err := c.api.PaymentMethods.Get(paymentMethodID, params)
	if err != nil {
		c.logger.Error("Stripe payment method retrieval failed",
			zap.String("payment_method_id", paymentMethodID),
			zap.Error(err))
		return nil, wrapStripeError(err)
	}

	detail := &provider.PaymentMethodDetail{ID: method.ID}
	if method.Card != nil {
		detail.Brand = string(method.Card.Brand)
		detail.Last4 = method.Card.Last4
	}
	return detail, nil
}

// wrapStripeError converts the SDK's error into the provider-agnostic form
// surfaced to callers.
func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &provider.ProviderError{
			Code:    string(stripeErr.Code),
			Message: stripeErr.Msg,
		}
	}
	return &provider.ProviderError{
		Code:    "api_error",
		Message: err.Error(),
	}
}
