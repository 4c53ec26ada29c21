package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
	"github.com/riwogerald/treasury-movement-simulator/internal/report"
	"github.com/riwogerald/treasury-movement-simulator/internal/service"
)

// ============================================================
// Accounts & balances
// ============================================================

func listAccountsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts")
		defer span.End()

		writeJSON(w, http.StatusOK, map[string]any{"accounts": svc.Accounts(ctx)})
	}
}

func getAccountHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/{accountId}")
		defer span.End()

		accountID := chi.URLParam(r, "accountId")
		span.SetAttributes(attribute.String("account.id", accountID))

		account, err := svc.Account(ctx, accountID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}

func getBalanceHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/balances/{currency}")
		defer span.End()

		currency := domain.Currency(strings.ToUpper(chi.URLParam(r, "currency")))
		total, err := svc.BalanceByCurrency(ctx, currency)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"currency": currency,
			"total":    total,
		})
	}
}

// ============================================================
// Transfers
// ============================================================

func transferHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/transfers")
		defer span.End()

		var req domain.TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ok, errs := svc.ExecuteTransfer(ctx, req)
		if !ok {
			// A rejected transfer is a business outcome, not a malformed
			// request: every failed rule comes back in one response.
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success": false,
				"errors":  errs,
			})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true})
	}
}

// ============================================================
// Transaction log
// ============================================================

func listTransactionsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/transactions")
		defer span.End()

		opts := domain.FilterOptions{
			Currency:   domain.Currency(r.URL.Query().Get("currency")),
			AccountID:  r.URL.Query().Get("accountId"),
			Status:     domain.TransactionStatus(r.URL.Query().Get("status")),
			SearchTerm: r.URL.Query().Get("search"),
		}
		if v := r.URL.Query().Get("dateFrom"); v != "" {
			t, err := parseDateParam(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "dateFrom must be RFC3339 or YYYY-MM-DD")
				return
			}
			opts.DateFrom = &t
		}
		if v := r.URL.Query().Get("dateTo"); v != "" {
			t, err := parseDateParam(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "dateTo must be RFC3339 or YYYY-MM-DD")
				return
			}
			opts.DateTo = &t
		}

		transactions := svc.Transactions(ctx, opts)
		if limit := parseIntQuery(r, "limit", 0); limit > 0 && limit < len(transactions) {
			transactions = transactions[:limit]
		}
		writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
	}
}

func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

// ============================================================
// Analytics & dashboard
// ============================================================

func analyticsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/analytics")
		defer span.End()

		days := parseIntQuery(r, "days", 30)
		compare := r.URL.Query().Get("compare") == "true"
		span.SetAttributes(attribute.Int("analytics.days", days))

		data, err := svc.Analytics(ctx, days, compare)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, data)
	}
}

func dashboardHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Dashboard(ctx))
	}
}

// ============================================================
// Reports
// ============================================================

type reportRequest struct {
	Type        domain.ReportType   `json:"type"`
	Days        int                 `json:"days"`
	Currency    domain.Currency     `json:"currency,omitempty"`
	AccountIDs  []string            `json:"accountIds,omitempty"`
	Format      domain.ExportFormat `json:"format,omitempty"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
}

func reportsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/reports")
		defer span.End()

		var req reportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Days <= 0 {
			req.Days = 30
		}
		if req.Format == "" {
			req.Format = domain.FormatJSON
		}
		span.SetAttributes(attribute.String("report.type", string(req.Type)))

		cfg := domain.ReportConfig{
			Type:        req.Type,
			DateRange:   domain.LastDays(req.Days, time.Now()),
			Currency:    req.Currency,
			AccountIDs:  req.AccountIDs,
			Format:      req.Format,
			Title:       req.Title,
			Description: req.Description,
		}

		rep, err := svc.BuildReport(ctx, cfg)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if req.Format == domain.FormatCSV {
			out, err := report.CSV(rep)
			if err != nil {
				handleServiceError(w, err, logger)
				return
			}
			filename := fmt.Sprintf("%s_report_%s.csv", req.Type, time.Now().UTC().Format("2006-01-02"))
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
			w.WriteHeader(http.StatusOK)
			w.Write(out)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// ============================================================
// Operational metrics snapshot
// ============================================================

func ledgerMetricsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/metrics/ledger")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.LedgerMetrics(ctx))
	}
}

// ============================================================
// Dev tools
// ============================================================

func devGenerateTransactionsHandler(svc *service.Treasury, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/dev/generate-transactions")
		defer span.End()

		var req domain.DevGenerateTransactionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := svc.DevGenerateTransactions(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
