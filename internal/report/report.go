// Package report assembles exportable report documents from the account
// book and the analytics pipeline. Every report type has a fixed payload
// shape with snake_case keys; assembly is pure and never fails on
// degenerate input.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/riwogerald/treasury-movement-simulator/internal/analytics"
	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// Report is one generated document: the resolved configuration, the
// bookkeeping metadata and the type-specific payload.
type Report struct {
	ID          string                `json:"id"`
	Config      domain.ReportConfig   `json:"config"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Metadata    domain.ReportMetadata `json:"metadata"`
	Payload     Payload               `json:"payload"`
}

// Payload is the closed set of per-type report bodies.
type Payload interface {
	reportPayload()
}

func (SummaryPayload) reportPayload()      {}
func (DetailedPayload) reportPayload()     {}
func (AnalyticsPayload) reportPayload()    {}
func (RiskPayload) reportPayload()         {}
func (PerformancePayload) reportPayload()  {}
func (TransactionsPayload) reportPayload() {}

// Titles and window descriptions, keyed by report type.

// Title returns the display title for a report type.
func Title(t domain.ReportType) string {
	switch t {
	case domain.ReportSummary:
		return "Treasury Summary Report"
	case domain.ReportDetailed:
		return "Detailed Treasury Analysis"
	case domain.ReportAnalytics:
		return "Treasury Analytics Report"
	case domain.ReportRisk:
		return "Risk Assessment Report"
	case domain.ReportPerformance:
		return "Account Performance Report"
	case domain.ReportTransactions:
		return "Transaction History Report"
	}
	return string(t)
}

// Description returns the display description for a report type over a window.
func Description(t domain.ReportType, r domain.DateRange) string {
	period := fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	switch t {
	case domain.ReportSummary:
		return fmt.Sprintf("Comprehensive overview of treasury operations for the period %s", period)
	case domain.ReportDetailed:
		return fmt.Sprintf("In-depth analysis of all treasury activities from %s", period)
	case domain.ReportAnalytics:
		return fmt.Sprintf("Statistical analysis and insights for treasury operations (%s)", period)
	case domain.ReportRisk:
		return fmt.Sprintf("Risk assessment and recommendations based on data from %s", period)
	case domain.ReportPerformance:
		return fmt.Sprintf("Account performance metrics and comparisons for %s", period)
	case domain.ReportTransactions:
		return fmt.Sprintf("Complete transaction history and details for %s", period)
	}
	return period
}

// Build assembles a report for cfg from a consistent snapshot of accounts
// and the transaction log. The analytics pipeline runs once; the payload
// projects it into the shape the report type defines. The caller supplies
// the generation time so assembly stays deterministic under test.
func Build(cfg domain.ReportConfig, accounts []domain.Account, transactions []domain.Transaction, now time.Time) (Report, error) {
	if !cfg.Type.Valid() {
		return Report{}, &domain.ErrValidation{Field: "type", Message: fmt.Sprintf("unknown report type %q", cfg.Type)}
	}
	if cfg.Title == "" {
		cfg.Title = Title(cfg.Type)
	}
	if cfg.Description == "" {
		cfg.Description = Description(cfg.Type, cfg.DateRange)
	}

	data := analytics.Generate(accounts, transactions, cfg.DateRange, nil)
	filtered := filterForConfig(cfg, transactions)

	rep := Report{
		ID:          uuid.New().String(),
		Config:      cfg,
		GeneratedAt: now,
		Metadata: domain.ReportMetadata{
			TotalPages:  1,
			RecordCount: len(filtered),
			Filters: domain.FilterOptions{
				Currency: cfg.Currency,
				DateFrom: &cfg.DateRange.Start,
				DateTo:   &cfg.DateRange.End,
			},
		},
	}
	rep.Payload = buildPayload(cfg, rep.Metadata, data, accounts, filtered, now)
	return rep, nil
}

func buildPayload(cfg domain.ReportConfig, meta domain.ReportMetadata, data domain.AnalyticsData, accounts []domain.Account, filtered []domain.Transaction, now time.Time) Payload {
	info := ReportInfo{
		Title:       cfg.Title,
		Description: cfg.Description,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}

	switch cfg.Type {
	case domain.ReportSummary:
		info.Period = &Period{
			Start: cfg.DateRange.Start.UTC().Format(time.RFC3339),
			End:   cfg.DateRange.End.UTC().Format(time.RFC3339),
		}
		return buildSummary(info, data)
	case domain.ReportDetailed:
		return DetailedPayload{ReportInfo: info, Analytics: data, Metadata: meta}
	case domain.ReportAnalytics:
		return AnalyticsPayload{
			ReportInfo:                 info,
			TransactionVolumeAnalysis:  data.TransactionVolume,
			AccountPerformanceAnalysis: data.AccountPerformance,
			CurrencyAnalytics:          data.CurrencyAnalytics,
			TrendAnalysis:              data.Trends,
			StatisticalSummary:         data.Summary,
		}
	case domain.ReportRisk:
		return buildRisk(info, data)
	case domain.ReportPerformance:
		return buildPerformance(info, data)
	default: // domain.ReportTransactions, cfg.Type already validated
		return buildTransactions(info, accounts, filtered)
	}
}

// filterForConfig narrows the log to the report's window, currency and
// account set. An empty account list means no account filter.
func filterForConfig(cfg domain.ReportConfig, transactions []domain.Transaction) []domain.Transaction {
	out := analytics.FilterByDateRange(transactions, cfg.DateRange)
	if cfg.Currency != "" {
		out = analytics.FilterByCurrency(out, cfg.Currency)
	}
	if len(cfg.AccountIDs) > 0 {
		wanted := make(map[string]struct{}, len(cfg.AccountIDs))
		for _, id := range cfg.AccountIDs {
			wanted[id] = struct{}{}
		}
		kept := out[:0:0]
		for _, tx := range out {
			if _, ok := wanted[tx.FromAccountID]; ok {
				kept = append(kept, tx)
				continue
			}
			if _, ok := wanted[tx.ToAccountID]; ok {
				kept = append(kept, tx)
			}
		}
		out = kept
	}
	return out
}
