package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riwogerald/treasury-movement-simulator/internal/config"
	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
	"github.com/riwogerald/treasury-movement-simulator/internal/fx"
	"github.com/riwogerald/treasury-movement-simulator/internal/handler"
	"github.com/riwogerald/treasury-movement-simulator/internal/infra/cache"
	"github.com/riwogerald/treasury-movement-simulator/internal/infra/client"
	"github.com/riwogerald/treasury-movement-simulator/internal/infra/observability"
	"github.com/riwogerald/treasury-movement-simulator/internal/infra/resilience"
	"github.com/riwogerald/treasury-movement-simulator/internal/ledger"
	"github.com/riwogerald/treasury-movement-simulator/internal/port"
	"github.com/riwogerald/treasury-movement-simulator/internal/seed"
	"github.com/riwogerald/treasury-movement-simulator/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Bool("dev_tools", cfg.DevToolsEnabled),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "treasury-movement-simulator")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	analyticsCache := cache.New[domain.AnalyticsData](cfg.CacheTTL)

	// --- Ledger ---
	store := ledger.New(seed.Accounts(), fx.NewTable(seed.Rates()), logger)
	logger.Info("ledger seeded",
		zap.Int("accounts", len(seed.Accounts())),
		zap.Int("rates", len(seed.Rates())),
	)

	// --- Optional external rate feed ---
	var ratesClient port.RateFetcher
	if cfg.RatesAPIURL != "" {
		resilienceCfg := resilience.Config{
			MaxRetries:     cfg.MaxRetries,
			InitialBackoff: cfg.InitialBackoff,
			MaxConcurrency: cfg.MaxConcurrency,
		}
		cb := resilience.NewCircuitBreaker("rates-api")
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		ratesClient = client.NewRatesClient(httpClient, cfg.RatesAPIURL, cb, resilienceCfg)
		logger.Info("external rate feed enabled", zap.String("rates_api_url", cfg.RatesAPIURL))
	} else {
		logger.Info("using built-in rate table")
	}

	// --- Services ---
	treasurySvc := service.NewTreasury(
		store,
		analyticsCache,
		ratesClient,
		metrics,
		logger,
	)

	// --- Periodic rate refresh ---
	refreshDone := make(chan struct{})
	if ratesClient != nil {
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
					_ = treasurySvc.RefreshRates(ctx)
					cancel()
				case <-refreshDone:
					return
				}
			}
		}()
	}

	// --- Router ---
	router := handler.NewRouter(treasurySvc, metrics, logger, cfg.DevToolsEnabled)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	close(refreshDone)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
