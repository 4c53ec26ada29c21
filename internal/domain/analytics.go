package domain

import "github.com/shopspring/decimal"

// ============================================================
// Derived analytics
// ============================================================

// PerformanceTier is a coarse classification of an account's activity.
type PerformanceTier string

const (
	PerformanceHigh   PerformanceTier = "high"
	PerformanceMedium PerformanceTier = "medium"
	PerformanceLow    PerformanceTier = "low"
)

// TrendDirection labels a period-over-period growth figure.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// RiskLevel buckets the overall 0-100 risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// TransactionVolumeData is one calendar day's transfer activity. Days with
// no activity are represented with zero volume and count rather than omitted.
type TransactionVolumeData struct {
	Date     string          `json:"date"` // YYYY-MM-DD, UTC
	Volume   decimal.Decimal `json:"volume"`
	Count    int             `json:"count"`
	Currency Currency        `json:"currency"`
}

// AccountPerformanceData summarizes one active account's flows in a window.
// Inbound sums the credited (converted) amounts; outbound sums the raw
// debited amounts, each in the respective transaction's terms.
type AccountPerformanceData struct {
	AccountID              string          `json:"accountId"`
	AccountName            string          `json:"accountName"`
	TotalInbound           decimal.Decimal `json:"totalInbound"`
	TotalOutbound          decimal.Decimal `json:"totalOutbound"`
	NetFlow                decimal.Decimal `json:"netFlow"`
	TransactionCount       int             `json:"transactionCount"`
	AverageTransactionSize decimal.Decimal `json:"averageTransactionSize"`
	Currency               Currency        `json:"currency"`
	Performance            PerformanceTier `json:"performance"`
}

// CurrencyAnalyticsData aggregates one currency's balances and activity.
// TotalBalance covers active accounts and is independent of the date range;
// the transaction figures cover in-range transactions denominated in the
// currency. MarketShare is a percentage of total in-range volume.
type CurrencyAnalyticsData struct {
	Currency               Currency        `json:"currency"`
	TotalBalance           decimal.Decimal `json:"totalBalance"`
	TotalTransactionVolume decimal.Decimal `json:"totalTransactionVolume"`
	TransactionCount       int             `json:"transactionCount"`
	AverageTransactionSize decimal.Decimal `json:"averageTransactionSize"`
	MarketShare            float64         `json:"marketShare"`
}

// RiskMetrics is the 0-100 composite risk assessment.
type RiskMetrics struct {
	LiquidityRisk      float64   `json:"liquidityRisk"`
	ConcentrationRisk  float64   `json:"concentrationRisk"`
	VolatilityRisk     float64   `json:"volatilityRisk"`
	OverallRiskScore   float64   `json:"overallRiskScore"`
	RiskLevel          RiskLevel `json:"riskLevel"`
	Recommendations    []string  `json:"recommendations"`
	LowBalanceAccounts []Account `json:"lowBalanceAccounts"`
}

// TrendData carries period-over-period growth percentages and their labels.
// Without a previous window every trend is stable with zero growth.
type TrendData struct {
	TransactionTrend  TrendDirection `json:"transactionTrend"`
	VolumeTrend       TrendDirection `json:"volumeTrend"`
	BalanceTrend      TrendDirection `json:"balanceTrend"`
	TransactionGrowth float64        `json:"transactionGrowth"`
	VolumeGrowth      float64        `json:"volumeGrowth"`
	BalanceGrowth     float64        `json:"balanceGrowth"`
}

// PeriodComparison holds percentage deltas against the previous window.
type PeriodComparison struct {
	VolumeChange  float64 `json:"volumeChange"`
	CountChange   float64 `json:"countChange"`
	BalanceChange float64 `json:"balanceChange"`
}

// AnalyticsSummary is the headline view over a window.
type AnalyticsSummary struct {
	TotalTransactionVolume   decimal.Decimal   `json:"totalTransactionVolume"`
	TotalTransactionCount    int               `json:"totalTransactionCount"`
	ActiveAccountsCount      int               `json:"activeAccountsCount"`
	AverageTransactionSize   decimal.Decimal   `json:"averageTransactionSize"`
	LargestTransaction       decimal.Decimal   `json:"largestTransaction"`
	MostActiveAccount        string            `json:"mostActiveAccount"`
	MostUsedCurrency         Currency          `json:"mostUsedCurrency"`
	Period                   DateRange         `json:"period"`
	PreviousPeriodComparison *PeriodComparison `json:"previousPeriodComparison,omitempty"`
}

// AnalyticsData aggregates every analytics section for one window.
type AnalyticsData struct {
	TransactionVolume  []TransactionVolumeData  `json:"transactionVolume"`
	AccountPerformance []AccountPerformanceData `json:"accountPerformance"`
	CurrencyAnalytics  []CurrencyAnalyticsData  `json:"currencyAnalytics"`
	RiskMetrics        RiskMetrics              `json:"riskMetrics"`
	Trends             TrendData                `json:"trends"`
	Summary            AnalyticsSummary         `json:"summary"`
}

// ============================================================
// Dashboard
// ============================================================

// LedgerMetrics is a point-in-time snapshot of the service's operational
// counters, served by GET /v1/metrics/ledger for quick inspection without
// a Prometheus scrape.
type LedgerMetrics struct {
	TransfersExecuted  int64   `json:"transfersExecuted"`
	TransfersRejected  int64   `json:"transfersRejected"`
	ValidationFailures int64   `json:"validationFailures"`
	RejectionRate      float64 `json:"rejectionRate"`
	CacheHitRate       float64 `json:"cacheHitRate"`
	Period             string  `json:"period"`
}

// DashboardMetrics is the at-a-glance view served to the overview screen.
type DashboardMetrics struct {
	TotalActiveAccounts    int                          `json:"totalActiveAccounts"`
	TotalBalances          map[Currency]decimal.Decimal `json:"totalBalances"`
	TodayTransactionCount  int                          `json:"todayTransactionCount"`
	WeeklyTransactionCount int                          `json:"weeklyTransactionCount"`
	SuccessRate            float64                      `json:"successRate"`
	PendingTransactions    int                          `json:"pendingTransactions"`
	ScheduledTransactions  int                          `json:"scheduledTransactions"`
	FailedTransactions     int                          `json:"failedTransactions"`
}
