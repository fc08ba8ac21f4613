package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	domainErrors "github.com/ridewave/payment-service/internal/domain/errors"
	"github.com/ridewave/payment-service/internal/domain/provider"
	"github.com/ridewave/payment-service/internal/usecase"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	paymentService *usecase.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

type SetupIntentRequest struct {
	RiderID string `json:"riderId" validate:"required"`
}

type SetupIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateSetupIntent hands the client a short-lived secret it uses to
// register a card directly with the provider.
func (h *PaymentHandler) CreateSetupIntent(c echo.Context) error {
	var req SetupIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	clientSecret, err := h.paymentService.CreateSetupIntent(c.Request().Context(), req.RiderID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, SetupIntentResponse{ClientSecret: clientSecret})
}

type CreatePaymentIntentRequest struct {
	TripID   int64  `json:"tripId" validate:"required,gt=0"`
	RiderID  string `json:"riderId" validate:"required"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"required,len=3"`
}

type CreatePaymentIntentResponse struct {
	Status string `json:"status"`
}

// CreatePaymentIntent charges the rider's saved card for a completed trip.
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req CreatePaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	status, err := h.paymentService.ChargeTrip(c.Request().Context(), usecase.ChargeTripInput{
		TripID:      req.TripID,
		RiderID:     req.RiderID,
		AmountCents: req.Amount,
		Currency:    req.Currency,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, CreatePaymentIntentResponse{Status: string(status)})
}

type PaymentMethodResponse struct {
	PaymentMethodID string `json:"paymentMethodId"`
	Brand           string `json:"brand"`
	Last4           string `json:"last4"`
	IsDefault       bool   `json:"isDefault"`
}

// GetPaymentMethods lists the rider's saved cards, default first.
func (h *PaymentHandler) GetPaymentMethods(c echo.Context) error {
	riderID := c.Param("riderId")

	methods, err := h.paymentService.ListPaymentMethods(c.Request().Context(), riderID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	resp := make([]PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		resp = append(resp, PaymentMethodResponse{
			PaymentMethodID: m.ProviderPaymentMethodID,
			Brand:           m.Brand,
			Last4:           m.Last4,
			IsDefault:       m.IsDefault,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

type PaymentResponse struct {
	TripID          int64     `json:"tripId"`
	PaymentIntentID string    `json:"paymentIntentId,omitempty"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

const defaultHistoryLimit = 20

// GetPaymentHistory lists the rider's recent charges, newest first.
func (h *PaymentHandler) GetPaymentHistory(c echo.Context) error {
	riderID := c.Param("riderId")

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		limit = parsed
	}

	payments, err := h.paymentService.ListRecentPayments(c.Request().Context(), riderID, limit)
	if err != nil {
		return h.errorResponse(c, err)
	}

	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		item := PaymentResponse{
			TripID:    p.TripID,
			Amount:    p.AmountCents,
			Currency:  p.Currency,
			Status:    string(p.Status),
			CreatedAt: p.CreatedAt,
		}
		if p.ProviderPaymentIntentID != nil {
			item.PaymentIntentID = *p.ProviderPaymentIntentID
		}
		resp = append(resp, item)
	}

	return c.JSON(http.StatusOK, resp)
}

// errorResponse maps domain and provider errors onto HTTP statuses.
func (h *PaymentHandler) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domainErrors.ErrRiderNotFound),
		errors.Is(err, domainErrors.ErrNoPaymentMethod):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidRiderID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var provErr *provider.ProviderError
	if errors.As(err, &provErr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Provider error: " + provErr.Message})
	}

	h.logger.Error("Unhandled payment error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
}
