package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// Growth band: within ±5% counts as stable.
func trendOf(growth float64) domain.TrendDirection {
	switch {
	case growth > 5:
		return domain.TrendUp
	case growth < -5:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}

func growthPct(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	return 0
}

func sumAmounts(transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

// Trends compares the current window against the preceding one and labels
// the growth of transaction count and volume. Without a previous window
// every trend reports stable with zero growth. The balance trend uses the
// window's volume as a proxy, since no historical balance data exists.
func Trends(transactions []domain.Transaction, r domain.DateRange, previous *domain.DateRange) domain.TrendData {
	if previous == nil {
		return domain.TrendData{
			TransactionTrend: domain.TrendStable,
			VolumeTrend:      domain.TrendStable,
			BalanceTrend:     domain.TrendStable,
		}
	}

	current := FilterByDateRange(transactions, r)
	prior := FilterByDateRange(transactions, *previous)

	txGrowth := growthPct(float64(len(current)), float64(len(prior)))
	volGrowth := growthPct(sumAmounts(current).InexactFloat64(), sumAmounts(prior).InexactFloat64())
	balGrowth := volGrowth // net-flow proxy

	return domain.TrendData{
		TransactionTrend:  trendOf(txGrowth),
		VolumeTrend:       trendOf(volGrowth),
		BalanceTrend:      trendOf(balGrowth),
		TransactionGrowth: txGrowth,
		VolumeGrowth:      volGrowth,
		BalanceGrowth:     balGrowth,
	}
}
