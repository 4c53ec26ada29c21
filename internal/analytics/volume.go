package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// TransactionVolume buckets in-range transactions by UTC calendar day,
// optionally restricted to one currency (empty currency means all). The
// result has one entry per calendar day in the window, including
// zero-volume entries for days without activity.
func TransactionVolume(transactions []domain.Transaction, r domain.DateRange, currency domain.Currency) []domain.TransactionVolumeData {
	filtered := FilterByDateRange(transactions, r)
	if currency != "" {
		filtered = FilterByCurrency(filtered, currency)
	}

	type bucket struct {
		volume decimal.Decimal
		count  int
	}
	byDay := make(map[string]bucket)
	for _, tx := range filtered {
		key := FormatDay(tx.Timestamp)
		b := byDay[key]
		b.volume = b.volume.Add(tx.Amount)
		b.count++
		byDay[key] = b
	}

	// Label currency defaults to USD when aggregating across currencies,
	// matching the seed data contract.
	label := currency
	if label == "" {
		label = domain.USD
	}

	var out []domain.TransactionVolumeData
	for day := r.Start.UTC(); !day.After(r.End.UTC()); day = day.AddDate(0, 0, 1) {
		key := FormatDay(day)
		b := byDay[key]
		out = append(out, domain.TransactionVolumeData{
			Date:     key,
			Volume:   b.volume,
			Count:    b.count,
			Currency: label,
		})
	}
	return out
}
