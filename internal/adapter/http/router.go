package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler         *handler.WalletHandler
	TransactionHandler    *handler.TransactionHandler
	HistoryHandler        *handler.HistoryHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler

	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter
}

// HandlersFor builds every API handler on top of one ledger service.
func HandlersFor(svc usecase.LedgerService, checkers ...handler.Checker) RouterConfig {
	return RouterConfig{
		WalletHandler:         handler.NewWalletHandler(svc),
		TransactionHandler:    handler.NewTransactionHandler(svc),
		HistoryHandler:        handler.NewHistoryHandler(svc),
		ReconciliationHandler: handler.NewReconciliationHandler(svc),
		HealthHandler:         handler.NewHealthHandler(checkers...),
		Logger:                zerolog.Nop(),
	}
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Wallets
		r.Route("/wallets", func(r chi.Router) {
			r.Post("/", cfg.WalletHandler.Create)
			r.Get("/", cfg.WalletHandler.List)
			r.Get("/{id}", cfg.WalletHandler.Get)
			r.Get("/{id}/balance", cfg.WalletHandler.Balance)
			r.Get("/{id}/historical-balance", cfg.HistoryHandler.HistoricalBalance)
			r.Post("/{id}/deposit", cfg.TransactionHandler.Deposit)
			r.Post("/{id}/withdraw", cfg.TransactionHandler.Withdraw)
			r.Post("/{id}/transfer", cfg.TransactionHandler.Transfer)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByWallet)
			r.Get("/{id}/reconciliation", cfg.ReconciliationHandler.ReconcileWallet)
		})

		// Transactions
		r.Get("/transactions/{id}", cfg.TransactionHandler.Get)

		// Ledger audits
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/consistency", cfg.ReconciliationHandler.Consistency)
			r.Get("/reconciliation", cfg.ReconciliationHandler.ReconcileAll)
		})
	})

	return r
}
