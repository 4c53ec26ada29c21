package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

var (
	highNetFlowFloor   = decimal.NewFromInt(1000)
	mediumNetFlowFloor = decimal.NewFromInt(500)
)

// AccountPerformance computes per-account flow metrics over the window for
// every active account. Inbound credits use the converted amount when the
// transfer crossed currencies; outbound debits use the raw amount, both in
// the account's own currency terms.
func AccountPerformance(accounts []domain.Account, transactions []domain.Transaction, r domain.DateRange) []domain.AccountPerformanceData {
	inRange := FilterByDateRange(transactions, r)

	var out []domain.AccountPerformanceData
	for _, acc := range activeAccounts(accounts) {
		touching := FilterByAccount(inRange, acc.ID)

		inbound := decimal.Zero
		outbound := decimal.Zero
		for _, tx := range touching {
			if tx.ToAccountID == acc.ID {
				inbound = inbound.Add(tx.Destination())
			}
			if tx.FromAccountID == acc.ID {
				outbound = outbound.Add(tx.Amount)
			}
		}

		netFlow := inbound.Sub(outbound)
		count := len(touching)
		avg := decimal.Zero
		if count > 0 {
			avg = inbound.Add(outbound).Div(decimal.NewFromInt(int64(count)))
		}

		tier := domain.PerformanceLow
		switch {
		case count >= 10 && netFlow.Abs().GreaterThan(highNetFlowFloor):
			tier = domain.PerformanceHigh
		case count >= 5 && netFlow.Abs().GreaterThan(mediumNetFlowFloor):
			tier = domain.PerformanceMedium
		}

		out = append(out, domain.AccountPerformanceData{
			AccountID:              acc.ID,
			AccountName:            acc.Name,
			TotalInbound:           inbound,
			TotalOutbound:          outbound,
			NetFlow:                netFlow,
			TransactionCount:       count,
			AverageTransactionSize: avg,
			Currency:               acc.Currency,
			Performance:            tier,
		})
	}
	return out
}
