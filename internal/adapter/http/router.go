package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/easybank/internal/adapter/http/handler"
	"github.com/iho/easybank/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransferHandler    *handler.TransferHandler
	TransactionHandler *handler.TransactionHandler
	HealthHandler      *handler.HealthHandler
	RateLimit          *middleware.RateLimitMiddleware
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1. Every route is throttled per client; the transfer path also
	// carries the per-account limit inside the use case.
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.With(cfg.RateLimit.Limit("/accounts")).
				Post("/", cfg.AccountHandler.Create)
			r.With(cfg.RateLimit.Limit("/accounts/{number}")).
				Get("/{number}", cfg.AccountHandler.Get)
			r.With(cfg.RateLimit.Limit("/accounts/{number}/transactions")).
				Get("/{number}/transactions", cfg.TransactionHandler.ListByAccount)
			r.With(cfg.RateLimit.Limit("/accounts/{number}/transfer")).
				Post("/{number}/transfer", cfg.TransferHandler.Create)
		})
	})

	return r
}
