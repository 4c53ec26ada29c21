package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// CurrencyAnalytics aggregates balances and in-range activity per supported
// currency. TotalBalance sums active-account balances and does not depend
// on the window; the transaction figures cover in-range transactions
// denominated in the currency. MarketShare is the currency's percentage of
// total in-range volume, 0 when there was no volume at all.
func CurrencyAnalytics(accounts []domain.Account, transactions []domain.Transaction, r domain.DateRange) []domain.CurrencyAnalyticsData {
	inRange := FilterByDateRange(transactions, r)

	totalVolume := decimal.Zero
	for _, tx := range inRange {
		totalVolume = totalVolume.Add(tx.Amount)
	}

	active := activeAccounts(accounts)

	out := make([]domain.CurrencyAnalyticsData, 0, len(domain.Currencies()))
	for _, c := range domain.Currencies() {
		balance := decimal.Zero
		for _, acc := range active {
			if acc.Currency == c {
				balance = balance.Add(acc.Balance)
			}
		}

		volume := decimal.Zero
		count := 0
		for _, tx := range inRange {
			if tx.Currency == c {
				volume = volume.Add(tx.Amount)
				count++
			}
		}

		avg := decimal.Zero
		if count > 0 {
			avg = volume.Div(decimal.NewFromInt(int64(count)))
		}

		share := 0.0
		if totalVolume.IsPositive() {
			share = volume.Div(totalVolume).InexactFloat64() * 100
		}

		out = append(out, domain.CurrencyAnalyticsData{
			Currency:               c,
			TotalBalance:           balance,
			TotalTransactionVolume: volume,
			TransactionCount:       count,
			AverageTransactionSize: avg,
			MarketShare:            share,
		})
	}
	return out
}
