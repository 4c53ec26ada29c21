package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// LowBalanceThresholds are the per-currency floors below which an active
// account counts toward liquidity risk.
var LowBalanceThresholds = map[domain.Currency]decimal.Decimal{
	domain.USD: decimal.NewFromInt(100),
	domain.KES: decimal.NewFromInt(10000),
	domain.NGN: decimal.NewFromInt(50000),
}

// Advisory strings appended when a risk dimension exceeds its threshold.
const (
	adviceLiquidity     = "Consider increasing account balances to improve liquidity"
	adviceConcentration = "Diversify balance distribution across accounts"
	adviceVolatility    = "Monitor transaction patterns for unusual volatility"
)

// RiskMetrics blends liquidity, concentration and volatility into a 0-100
// composite score. All components resolve to 0 on empty input.
func RiskMetrics(accounts []domain.Account, transactions []domain.Transaction, r domain.DateRange) domain.RiskMetrics {
	active := activeAccounts(accounts)

	// Liquidity: share of active accounts below their currency's floor.
	lowBalance := make([]domain.Account, 0)
	for _, acc := range active {
		if floor, ok := LowBalanceThresholds[acc.Currency]; ok && acc.Balance.LessThan(floor) {
			lowBalance = append(lowBalance, acc)
		}
	}
	liquidity := 0.0
	if len(active) > 0 {
		liquidity = math.Min(float64(len(lowBalance))/float64(len(active))*100, 100)
	}

	// Concentration: largest active balance as a share of the total.
	total := decimal.Zero
	maxBalance := decimal.Zero
	for _, acc := range active {
		total = total.Add(acc.Balance)
		if acc.Balance.GreaterThan(maxBalance) {
			maxBalance = acc.Balance
		}
	}
	concentration := 0.0
	if total.IsPositive() {
		concentration = maxBalance.Div(total).InexactFloat64() * 100
	}

	// Volatility: coefficient of variation of daily volumes, capped at 100.
	volatility := 0.0
	daily := TransactionVolume(transactions, r, "")
	if len(daily) > 0 {
		sum := 0.0
		for _, d := range daily {
			sum += d.Volume.InexactFloat64()
		}
		mean := sum / float64(len(daily))
		if mean > 0 {
			variance := 0.0
			for _, d := range daily {
				diff := d.Volume.InexactFloat64() - mean
				variance += diff * diff
			}
			variance /= float64(len(daily))
			volatility = math.Min(math.Sqrt(variance)/mean*100, 100)
		}
	}

	overall := liquidity*0.4 + concentration*0.3 + volatility*0.3

	level := domain.RiskLow
	switch {
	case overall >= 75:
		level = domain.RiskCritical
	case overall >= 50:
		level = domain.RiskHigh
	case overall >= 25:
		level = domain.RiskMedium
	}

	recommendations := make([]string, 0, 3)
	if liquidity > 30 {
		recommendations = append(recommendations, adviceLiquidity)
	}
	if concentration > 50 {
		recommendations = append(recommendations, adviceConcentration)
	}
	if volatility > 40 {
		recommendations = append(recommendations, adviceVolatility)
	}

	return domain.RiskMetrics{
		LiquidityRisk:      liquidity,
		ConcentrationRisk:  concentration,
		VolatilityRisk:     volatility,
		OverallRiskScore:   overall,
		RiskLevel:          level,
		Recommendations:    recommendations,
		LowBalanceAccounts: lowBalance,
	}
}
