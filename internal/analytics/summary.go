package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// Summary produces the headline metrics for a window: totals, the largest
// single transaction, the most active account (by combined in+out touches)
// and the most used currency (by transaction count). Ties keep whichever
// was seen first while walking the log, so the result is deterministic.
func Summary(accounts []domain.Account, transactions []domain.Transaction, r domain.DateRange, previous *domain.DateRange) domain.AnalyticsSummary {
	inRange := FilterByDateRange(transactions, r)
	active := activeAccounts(accounts)

	totalVolume := sumAmounts(inRange)
	count := len(inRange)

	avg := decimal.Zero
	if count > 0 {
		avg = totalVolume.Div(decimal.NewFromInt(int64(count)))
	}

	largest := decimal.Zero
	for _, tx := range inRange {
		if tx.Amount.GreaterThan(largest) {
			largest = tx.Amount
		}
	}

	mostActive := mostActiveAccount(accounts, inRange)
	mostUsed := mostUsedCurrency(inRange)

	var comparison *domain.PeriodComparison
	if previous != nil {
		prior := FilterByDateRange(transactions, *previous)
		comparison = &domain.PeriodComparison{
			VolumeChange: growthPct(totalVolume.InexactFloat64(), sumAmounts(prior).InexactFloat64()),
			CountChange:  growthPct(float64(count), float64(len(prior))),
			// No historical balance data exists to compare against.
			BalanceChange: 0,
		}
	}

	return domain.AnalyticsSummary{
		TotalTransactionVolume:   totalVolume,
		TotalTransactionCount:    count,
		ActiveAccountsCount:      len(active),
		AverageTransactionSize:   avg,
		LargestTransaction:       largest,
		MostActiveAccount:        mostActive,
		MostUsedCurrency:         mostUsed,
		Period:                   r,
		PreviousPeriodComparison: comparison,
	}
}

// mostActiveAccount counts both sides of every transaction and returns the
// name of the busiest account, or its id when the account is unknown.
// Iteration follows the log's order (not map order) for deterministic ties.
func mostActiveAccount(accounts []domain.Account, transactions []domain.Transaction) string {
	touches := make(map[string]int)
	var order []string
	record := func(id string) {
		if _, seen := touches[id]; !seen {
			order = append(order, id)
		}
		touches[id]++
	}
	for _, tx := range transactions {
		record(tx.FromAccountID)
		record(tx.ToAccountID)
	}

	best := ""
	bestCount := 0
	for _, id := range order {
		if touches[id] > bestCount {
			bestCount = touches[id]
			best = id
		}
	}
	if best == "" {
		return ""
	}
	for _, acc := range accounts {
		if acc.ID == best {
			return acc.Name
		}
	}
	return best
}

// mostUsedCurrency returns the currency with the highest transaction count,
// defaulting to USD for an empty window.
func mostUsedCurrency(transactions []domain.Transaction) domain.Currency {
	counts := make(map[domain.Currency]int)
	var order []domain.Currency
	for _, tx := range transactions {
		if _, seen := counts[tx.Currency]; !seen {
			order = append(order, tx.Currency)
		}
		counts[tx.Currency]++
	}

	most := domain.USD
	mostCount := 0
	for _, c := range order {
		if counts[c] > mostCount {
			mostCount = counts[c]
			most = c
		}
	}
	return most
}
