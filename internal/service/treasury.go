package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/riwogerald/treasury-movement-simulator/internal/analytics"
	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
	"github.com/riwogerald/treasury-movement-simulator/internal/fx"
	"github.com/riwogerald/treasury-movement-simulator/internal/infra/observability"
	"github.com/riwogerald/treasury-movement-simulator/internal/port"
	"github.com/riwogerald/treasury-movement-simulator/internal/report"
)

var tracer = otel.Tracer("service/treasury")

// Treasury orchestrates the ledger, the analytics pipeline and the report
// assembler behind the HTTP surface.
type Treasury struct {
	store          port.LedgerStore
	analyticsCache port.Cache[domain.AnalyticsData]
	rates          port.RateFetcher // nil when no external feed is configured
	metrics        *observability.Metrics
	logger         *zap.Logger
	now            func() time.Time

	// generation versions analytics cache keys; bumping it on every
	// executed transfer makes stale windows unreachable without a
	// cache-wide flush.
	generation atomic.Uint64
}

// NewTreasury creates the treasury service with all dependencies injected.
func NewTreasury(
	store port.LedgerStore,
	analyticsCache port.Cache[domain.AnalyticsData],
	rates port.RateFetcher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Treasury {
	return &Treasury{
		store:          store,
		analyticsCache: analyticsCache,
		rates:          rates,
		metrics:        metrics,
		logger:         logger,
		now:            time.Now,
	}
}

// SetNowFunc overrides the service clock. Test hook.
func (t *Treasury) SetNowFunc(fn func() time.Time) {
	t.now = fn
}

// Accounts returns every account in seed order.
func (t *Treasury) Accounts(ctx context.Context) []domain.Account {
	_, span := tracer.Start(ctx, "Treasury.Accounts")
	defer span.End()

	return t.store.Accounts()
}

// Account returns one account by id.
func (t *Treasury) Account(ctx context.Context, id string) (domain.Account, error) {
	_, span := tracer.Start(ctx, "Treasury.Account")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", id))

	acc, ok := t.store.Account(id)
	if !ok {
		return domain.Account{}, &domain.ErrNotFound{Resource: "account", ID: id}
	}
	return acc, nil
}

// BalanceByCurrency sums active-account balances in one currency.
func (t *Treasury) BalanceByCurrency(ctx context.Context, c domain.Currency) (decimal.Decimal, error) {
	_, span := tracer.Start(ctx, "Treasury.BalanceByCurrency")
	defer span.End()

	if !c.Valid() {
		return decimal.Zero, &domain.ErrValidation{Field: "currency", Message: fmt.Sprintf("unknown currency %q", c)}
	}
	return t.store.TotalByCurrency(c), nil
}

// ExecuteTransfer validates and applies a transfer. A rejected transfer
// returns ok=false with every failed rule's message; it is a business
// outcome, not an error.
func (t *Treasury) ExecuteTransfer(ctx context.Context, req domain.TransferRequest) (bool, []string) {
	_, span := tracer.Start(ctx, "Treasury.ExecuteTransfer")
	defer span.End()
	span.SetAttributes(
		attribute.String("transfer.from", req.FromAccountID),
		attribute.String("transfer.to", req.ToAccountID),
	)

	start := t.now()
	ok, errs := t.store.ExecuteTransfer(req)
	t.metrics.RecordRequestDuration("transfer", time.Since(start))

	if ok {
		t.metrics.IncrTransfer("executed")
		t.generation.Add(1)
	} else {
		t.metrics.IncrTransfer("rejected")
		t.metrics.AddValidationFailures(len(errs))
	}
	return ok, errs
}

// Transactions returns the log newest first, narrowed by the filter options.
// The search term matches account names, notes, transaction ids (all
// case-insensitive) and the amount's digits.
func (t *Treasury) Transactions(ctx context.Context, opts domain.FilterOptions) []domain.Transaction {
	_, span := tracer.Start(ctx, "Treasury.Transactions")
	defer span.End()

	accounts, _ := t.store.Snapshot()
	names := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		names[acc.ID] = acc.Name
	}
	accountName := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return "Unknown Account"
	}

	all := t.store.RecentTransactions()
	out := make([]domain.Transaction, 0, len(all))
	for _, tx := range all {
		if opts.Currency != "" && tx.Currency != opts.Currency {
			continue
		}
		if opts.AccountID != "" && tx.FromAccountID != opts.AccountID && tx.ToAccountID != opts.AccountID {
			continue
		}
		if opts.Status != "" && tx.Status != opts.Status {
			continue
		}
		if opts.DateFrom != nil && tx.Timestamp.Before(*opts.DateFrom) {
			continue
		}
		if opts.DateTo != nil {
			// The upper bound is inclusive through the end of that day.
			end := opts.DateTo.UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)
			if tx.Timestamp.After(end) {
				continue
			}
		}
		if opts.SearchTerm != "" && !matchesSearch(tx, opts.SearchTerm, accountName) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func matchesSearch(tx domain.Transaction, term string, accountName func(string) string) bool {
	lower := strings.ToLower(term)
	if strings.Contains(strings.ToLower(accountName(tx.FromAccountID)), lower) ||
		strings.Contains(strings.ToLower(accountName(tx.ToAccountID)), lower) ||
		strings.Contains(strings.ToLower(tx.Note), lower) ||
		strings.Contains(strings.ToLower(tx.ID), lower) {
		return true
	}
	return strings.Contains(tx.Amount.String(), term)
}

// Analytics computes the full analytics view over the trailing window of
// the given length. With compare set, the preceding window of equal length
// feeds the trend and comparison sections. Results are cached per window;
// any executed transfer makes cached windows unreachable.
func (t *Treasury) Analytics(ctx context.Context, days int, compare bool) (domain.AnalyticsData, error) {
	_, span := tracer.Start(ctx, "Treasury.Analytics")
	defer span.End()
	span.SetAttributes(attribute.Int("analytics.days", days))

	if days <= 0 {
		return domain.AnalyticsData{}, &domain.ErrValidation{Field: "days", Message: "days must be greater than zero"}
	}

	cacheKey := fmt.Sprintf("analytics:%d:%d:%t", t.generation.Load(), days, compare)
	if cached, ok := t.analyticsCache.Get(cacheKey); ok {
		t.metrics.IncrCacheHit("analytics")
		return cached, nil
	}
	t.metrics.IncrCacheMiss("analytics")

	start := t.now()
	window := domain.LastDays(days, start)
	var previous *domain.DateRange
	if compare {
		p := window.Previous()
		previous = &p
	}

	accounts, transactions := t.store.Snapshot()
	data := analytics.Generate(accounts, transactions, window, previous)
	t.metrics.RecordRequestDuration("analytics", time.Since(start))

	t.analyticsCache.Set(cacheKey, data)
	return data, nil
}

// BuildReport assembles a report over a fresh ledger snapshot.
func (t *Treasury) BuildReport(ctx context.Context, cfg domain.ReportConfig) (report.Report, error) {
	_, span := tracer.Start(ctx, "Treasury.BuildReport")
	defer span.End()
	span.SetAttributes(attribute.String("report.type", string(cfg.Type)))

	start := t.now()
	accounts, transactions := t.store.Snapshot()
	rep, err := report.Build(cfg, accounts, transactions, start)
	if err != nil {
		return report.Report{}, err
	}
	t.metrics.RecordRequestDuration("report", time.Since(start))
	t.metrics.IncrReport(string(cfg.Type))

	t.logger.Info("report generated",
		zap.String("report_id", rep.ID),
		zap.String("type", string(cfg.Type)),
		zap.Int("record_count", rep.Metadata.RecordCount),
	)
	return rep, nil
}

// Dashboard computes the at-a-glance overview metrics.
func (t *Treasury) Dashboard(ctx context.Context) domain.DashboardMetrics {
	_, span := tracer.Start(ctx, "Treasury.Dashboard")
	defer span.End()

	accounts, transactions := t.store.Snapshot()
	now := t.now().UTC()
	today := now.Truncate(24 * time.Hour)
	weekAgo := now.AddDate(0, 0, -7)

	m := domain.DashboardMetrics{
		TotalBalances: make(map[domain.Currency]decimal.Decimal, len(domain.Currencies())),
	}
	for _, acc := range accounts {
		if acc.IsActive {
			m.TotalActiveAccounts++
		}
	}
	for _, c := range domain.Currencies() {
		m.TotalBalances[c] = t.store.TotalByCurrency(c)
	}

	var completed int
	for _, tx := range transactions {
		ts := tx.Timestamp.UTC()
		if ts.Truncate(24 * time.Hour).Equal(today) {
			m.TodayTransactionCount++
		}
		if !ts.Before(weekAgo) && !ts.After(now) {
			m.WeeklyTransactionCount++
		}
		switch tx.Status {
		case domain.StatusCompleted:
			completed++
		case domain.StatusPending:
			m.PendingTransactions++
		case domain.StatusScheduled:
			m.ScheduledTransactions++
		case domain.StatusFailed:
			m.FailedTransactions++
		}
	}
	if len(transactions) > 0 {
		m.SuccessRate = float64(completed) / float64(len(transactions)) * 100
	}
	return m
}

// RefreshRates pulls the current rate sheet from the external feed and
// swaps the ledger's conversion table. A no-op without a configured feed.
func (t *Treasury) RefreshRates(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Treasury.RefreshRates")
	defer span.End()

	if t.rates == nil {
		return nil
	}

	entries, err := t.rates.FetchRates(ctx)
	if err != nil {
		t.metrics.IncrExternalError("rates")
		t.logger.Warn("rate refresh failed, keeping current table", zap.Error(err))
		return err
	}
	if len(entries) == 0 {
		t.logger.Warn("rate feed returned no entries, keeping current table")
		return nil
	}

	t.store.SetRates(fx.NewTable(entries))
	t.generation.Add(1)
	t.logger.Info("rate table refreshed", zap.Int("entries", len(entries)))
	return nil
}

// LedgerMetrics returns the operational counter snapshot.
func (t *Treasury) LedgerMetrics(ctx context.Context) *domain.LedgerMetrics {
	_, span := tracer.Start(ctx, "Treasury.LedgerMetrics")
	defer span.End()

	return t.metrics.GetLedgerSnapshot()
}
