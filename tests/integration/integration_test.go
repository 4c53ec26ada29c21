package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newStack(t *testing.T, rates port.RateFetcher) (*service.Treasury, http.Handler) {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := ledger.New(seed.Accounts(), fx.NewTable(seed.Rates()), logger)
	svc := service.NewTreasury(store, cache.New[domain.AnalyticsData](5*time.Minute), rates, metrics, logger)
	return svc, handler.NewRouter(svc, metrics, logger, true)
}

// TestIntegration_FullFlow drives a transfer through the HTTP surface and
// reads it back through the transaction log, analytics, dashboard and a
// CSV report export.
func TestIntegration_FullFlow(t *testing.T) {
	_, router := newStack(t, nil)

	// --- Execute a cross-currency transfer ---
	body, _ := json.Marshal(map[string]any{
		"fromAccountId": "3", // Bank_USD_1
		"toAccountId":   "1", // Mpesa_KES_1
		"amount":        "1000",
		"note":          "quarterly rebalance",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/transfers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	// --- Transaction log reflects the transfer with conversion ---
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transactions?search=rebalance", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var txBody struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&txBody); err != nil {
		t.Fatalf("failed to decode transactions: %v", err)
	}
	if len(txBody.Transactions) != 1 {
		t.Fatalf("expected 1 matching transaction, got %d", len(txBody.Transactions))
	}
	tx := txBody.Transactions[0]
	if tx.ConvertedAmount == nil || !tx.ConvertedAmount.Equal(decimal.RequireFromString("132500")) {
		t.Errorf("expected converted amount 132500, got %v", tx.ConvertedAmount)
	}

	// --- Source balance moved ---
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/accounts/3", nil))
	var acc domain.Account
	if err := json.NewDecoder(rec.Body).Decode(&acc); err != nil {
		t.Fatalf("failed to decode account: %v", err)
	}
	if !acc.Balance.Equal(decimal.NewFromInt(14750)) {
		t.Errorf("expected source balance 14750, got %s", acc.Balance)
	}

	// --- Analytics sees the transfer ---
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analytics?days=7", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var analyticsBody domain.AnalyticsData
	if err := json.NewDecoder(rec.Body).Decode(&analyticsBody); err != nil {
		t.Fatalf("failed to decode analytics: %v", err)
	}
	if analyticsBody.Summary.TotalTransactionCount != 1 {
		t.Errorf("expected analytics to count 1 transaction, got %d", analyticsBody.Summary.TotalTransactionCount)
	}

	// --- Dashboard counts today's activity ---
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	var dash domain.DashboardMetrics
	if err := json.NewDecoder(rec.Body).Decode(&dash); err != nil {
		t.Fatalf("failed to decode dashboard: %v", err)
	}
	if dash.TodayTransactionCount != 1 {
		t.Errorf("expected 1 transaction today, got %d", dash.TodayTransactionCount)
	}

	// --- CSV report export ---
	body, _ = json.Marshal(map[string]any{
		"type":   "transactions",
		"days":   7,
		"format": "csv",
	})
	req = httptest.NewRequest(http.MethodPost, "/v1/reports", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected text/csv content type, got %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "quarterly rebalance") {
		t.Error("expected the transfer note in the CSV export")
	}
}

// TestIntegration_RateFeedRefresh wires a mock rate feed through the
// resilient HTTP client and verifies a refreshed table drives conversions.
func TestIntegration_RateFeedRefresh(t *testing.T) {
	ratesServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/rates" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		rates := []domain.ExchangeRate{
			{From: domain.USD, To: domain.KES, Rate: decimal.NewFromInt(140)},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rates)
	}))
	defer ratesServer.Close()

	cb := resilience.NewCircuitBreaker("test-rates")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}
	ratesClient := client.NewRatesClient(httpClient, ratesServer.URL, cb, cfg)

	svc, router := newStack(t, ratesClient)

	if err := svc.RefreshRates(context.Background()); err != nil {
		t.Fatalf("rate refresh failed: %v", err)
	}

	body, _ := json.Marshal(map[string]any{
		"fromAccountId": "3",
		"toAccountId":   "1",
		"amount":        "100",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/transfers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transactions", nil))
	var txBody struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&txBody); err != nil {
		t.Fatalf("failed to decode transactions: %v", err)
	}
	if len(txBody.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txBody.Transactions))
	}
	tx := txBody.Transactions[0]
	if tx.ConvertedAmount == nil || !tx.ConvertedAmount.Equal(decimal.NewFromInt(14000)) {
		t.Errorf("expected conversion at refreshed rate (14000), got %v", tx.ConvertedAmount)
	}
}

// TestIntegration_RateFeedDown keeps the built-in table when the feed errors.
func TestIntegration_RateFeedDown(t *testing.T) {
	ratesServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ratesServer.Close()

	cb := resilience.NewCircuitBreaker("test-rates-down")
	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}
	ratesClient := client.NewRatesClient(httpClient, ratesServer.URL, cb, cfg)

	svc, router := newStack(t, ratesClient)

	if err := svc.RefreshRates(context.Background()); err == nil {
		t.Fatal("expected error from failing feed")
	}

	// Conversions still work off the seed table.
	body, _ := json.Marshal(map[string]any{
		"fromAccountId": "3",
		"toAccountId":   "1",
		"amount":        "100",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/transfers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d. Body: %s", rec.Code, rec.Body.String())
	}
}
