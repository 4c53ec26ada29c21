package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/riwogerald/treasury-movement-simulator/internal/infra/observability"
	"github.com/riwogerald/treasury-movement-simulator/internal/service"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svc *service.Treasury, metrics *observability.Metrics, logger *zap.Logger, devTools bool) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svc))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Accounts & balances
		// =============================================
		r.Get("/accounts", listAccountsHandler(svc, logger))
		r.Get("/accounts/{accountId}", getAccountHandler(svc, logger))
		r.Get("/balances/{currency}", getBalanceHandler(svc, logger))

		// =============================================
		// Transfers & transaction log
		// =============================================
		r.Post("/transfers", transferHandler(svc, logger))
		r.Get("/transactions", listTransactionsHandler(svc, logger))

		// =============================================
		// Analytics, reports & dashboard
		// =============================================
		r.Get("/analytics", analyticsHandler(svc, logger))
		r.Post("/reports", reportsHandler(svc, logger))
		r.Get("/dashboard", dashboardHandler(svc, logger))

		// =============================================
		// Operational metrics snapshot
		// =============================================
		r.Get("/metrics/ledger", ledgerMetricsHandler(svc, logger))

		// =============================================
		// Dev tools (testing helpers)
		// =============================================
		if devTools {
			r.Post("/dev/generate-transactions", devGenerateTransactionsHandler(svc, logger))
		}
	})

	return r
}

// healthzHandler reports liveness plus a cheap ledger probe.
func healthzHandler(svc *service.Treasury) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts := svc.Accounts(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "healthy",
			"accounts": len(accounts),
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
