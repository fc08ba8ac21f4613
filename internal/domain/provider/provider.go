package provider

import "context"

// CustomerClient creates customer identities on the payment provider side.
type CustomerClient interface {
	// CreateCustomer creates a provider customer carrying the rider ID as
	// opaque metadata and returns the provider-assigned customer ID.
	CreateCustomer(ctx context.Context, riderID string) (string, error)
}

// PaymentClient covers the provider operations used by the setup, charge and
// webhook flows. Implementations wrap the provider SDK so the workflow logic
// can be tested without a live network dependency.
type PaymentClient interface {
	// CreateSetupIntent creates a card-only, off-session setup intent
	// scoped to the given provider customer.
	CreateSetupIntent(ctx context.Context, customerID string) (*SetupIntentResult, error)

	// CreatePaymentIntent creates and immediately confirms an off-session
	// charge against a previously saved payment method.
	CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest) (*PaymentIntentResult, error)

	// GetPaymentMethod fetches the full card detail for a provider payment
	// method ID. Webhook events carry only the reference, not the detail.
	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*PaymentMethodDetail, error)
}

// SetupIntentResult is the provider's response to setup intent creation.
type SetupIntentResult struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// PaymentIntentRequest describes an off-session charge to create and confirm.
type PaymentIntentRequest struct {
	TripID          int64  `json:"trip_id"`
	CustomerID      string `json:"customer_id"`
	PaymentMethodID string `json:"payment_method_id"`
	AmountCents     int64  `json:"amount_cents"` // smallest currency unit
	Currency        string `json:"currency"`
	IdempotencyKey  string `json:"idempotency_key,omitempty"`
}

// PaymentIntentResult carries the provider-reported outcome of a charge.
// Amount and currency come from the provider response, not the request.
type PaymentIntentResult struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// PaymentMethodDetail is the card detail behind a provider payment method ID.
type PaymentMethodDetail struct {
	ID    string `json:"id"`
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

// ProviderError wraps an error returned by the provider's API. It is
// surfaced to callers largely verbatim and never retried by this service.
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
