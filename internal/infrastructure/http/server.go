package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	handlers "github.com/ridewave/payment-service/internal/adapter/handler/http"
	"github.com/ridewave/payment-service/internal/config"
	"github.com/ridewave/payment-service/internal/domain/provider"
	"github.com/ridewave/payment-service/internal/infrastructure/database"
	"github.com/ridewave/payment-service/internal/usecase"
	"go.uber.org/zap"
)

type Server struct {
	config    *config.Config
	logger    *zap.Logger
	echo      *echo.Echo
	repos     *database.Repositories
	customers provider.CustomerClient
	processor provider.PaymentClient
}

// requestValidator adapts go-playground/validator to echo's Validator.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	repos *database.Repositories,
	customers provider.CustomerClient,
	processor provider.PaymentClient,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if cfg.Service.ClientURL != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{cfg.Service.ClientURL},
			AllowMethods: []string{echo.GET, echo.POST},
		}))
	}

	return &Server{
		config:    cfg,
		logger:    logger,
		echo:      e,
		repos:     repos,
		customers: customers,
		processor: processor,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "payment",
		})
	})

	// Initialize usecases and handlers
	customerService := usecase.NewCustomerService(s.repos.Rider, s.customers, s.logger)
	paymentService := usecase.NewPaymentService(customerService, s.repos.Rider, s.repos.PaymentMethod, s.repos.Payment, s.processor, s.logger)
	webhookService := usecase.NewWebhookService(s.repos.Rider, s.repos.PaymentMethod, s.processor, s.logger)

	paymentHandler := handlers.NewPaymentHandler(paymentService, s.logger)
	webhookHandler := handlers.NewWebhookHandler(s.logger, s.config.Service.StripeWebhookSecret, webhookService)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	payments := v1.Group("/payments")
	payments.POST("/setup-intent", paymentHandler.CreateSetupIntent)
	payments.POST("/create-payment-intent", paymentHandler.CreatePaymentIntent)
	payments.GET("/methods/:riderId", paymentHandler.GetPaymentMethods)
	payments.GET("/history/:riderId", paymentHandler.GetPaymentHistory)

	// Webhook route (outside API versioning)
	s.echo.POST("/webhooks/stripe", webhookHandler.HandleWebhook)
}
