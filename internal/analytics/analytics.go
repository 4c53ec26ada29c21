package analytics

import (
	"golang.org/x/sync/errgroup"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// Generate assembles every analytics section for one window. The inputs
// are an immutable snapshot, so the six sections are computed concurrently;
// the result is deterministic regardless of scheduling. Like the section
// functions it never fails: degenerate input yields zero-valued sections.
func Generate(accounts []domain.Account, transactions []domain.Transaction, r domain.DateRange, previous *domain.DateRange) domain.AnalyticsData {
	var data domain.AnalyticsData

	var g errgroup.Group
	g.Go(func() error {
		data.TransactionVolume = TransactionVolume(transactions, r, "")
		return nil
	})
	g.Go(func() error {
		data.AccountPerformance = AccountPerformance(accounts, transactions, r)
		return nil
	})
	g.Go(func() error {
		data.CurrencyAnalytics = CurrencyAnalytics(accounts, transactions, r)
		return nil
	})
	g.Go(func() error {
		data.RiskMetrics = RiskMetrics(accounts, transactions, r)
		return nil
	})
	g.Go(func() error {
		data.Trends = Trends(transactions, r, previous)
		return nil
	})
	g.Go(func() error {
		data.Summary = Summary(accounts, transactions, r, previous)
		return nil
	})
	_ = g.Wait() // sections never return errors

	return data
}
