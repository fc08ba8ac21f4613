package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	domainErrors "github.com/ridewave/payment-service/internal/domain/errors"
	"github.com/ridewave/payment-service/internal/usecase"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

type WebhookHandler struct {
	logger         *zap.Logger
	webhookSecret  string
	webhookService *usecase.WebhookService
}

func NewWebhookHandler(logger *zap.Logger, webhookSecret string, webhookService *usecase.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		logger:         logger,
		webhookSecret:  webhookSecret,
		webhookService: webhookService,
	}
}

// HandleWebhook verifies and dispatches provider-pushed events. Verified
// events are acknowledged with 200 regardless of type so the provider stops
// retrying; only signature/parse failures return 400. A verified event whose
// local processing fails returns 500 so the provider redelivers — the insert
// is idempotent, so redelivery cannot duplicate state.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading webhook body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error reading request body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(
		body,
		sig,
		h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		h.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Webhook signature verification failed"})
	}

	h.logger.Info("Webhook event received",
		zap.String("type", string(event.Type)),
		zap.String("id", event.ID),
		zap.Time("created", time.Unix(event.Created, 0)),
	)

	switch event.Type {
	case stripe.EventTypeSetupIntentSucceeded:
		var intent stripe.SetupIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.logger.Error("Error parsing setup intent payload", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error parsing webhook"})
		}
		if intent.Customer == nil || intent.PaymentMethod == nil {
			h.logger.Error("Setup intent event missing customer or payment method",
				zap.String("event_id", event.ID))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error parsing webhook"})
		}

		err := h.webhookService.HandleSetupIntentSucceeded(
			c.Request().Context(),
			intent.Customer.ID,
			intent.PaymentMethod.ID,
		)
		if err != nil {
			if errors.Is(err, domainErrors.ErrRiderMappingMissing) {
				// Already logged at error by the service; withholding the
				// ack keeps the event visible for investigation.
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Unexpected state"})
			}
			h.logger.Error("Failed to process setup intent event",
				zap.String("event_id", event.ID),
				zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to process event"})
		}

	case stripe.EventTypePaymentIntentSucceeded,
		stripe.EventTypePaymentIntentPaymentFailed:
		// Charge outcomes are recorded synchronously by the charge
		// workflow; these confirmations need no action.
		h.logger.Info("Acknowledged payment intent event",
			zap.String("type", string(event.Type)))

	default:
		h.logger.Info("Unhandled event type",
			zap.String("type", string(event.Type)))
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
