package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// ============================================================
// Payload shapes
// ============================================================

// ReportInfo heads every payload. Period is present only on summary reports.
type ReportInfo struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	GeneratedAt string  `json:"generated_at"`
	Period      *Period `json:"period,omitempty"`
}

type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SummaryPayload struct {
	ReportInfo        ReportInfo               `json:"report_info"`
	SummaryMetrics    SummaryMetrics           `json:"summary_metrics"`
	CurrencyBreakdown []CurrencyBreakdownEntry `json:"currency_breakdown"`
	RiskSummary       RiskSummary              `json:"risk_summary"`
}

type SummaryMetrics struct {
	TotalTransactionVolume decimal.Decimal `json:"total_transaction_volume"`
	TotalTransactionCount  int             `json:"total_transaction_count"`
	ActiveAccounts         int             `json:"active_accounts"`
	AverageTransactionSize decimal.Decimal `json:"average_transaction_size"`
	LargestTransaction     decimal.Decimal `json:"largest_transaction"`
	MostActiveAccount      string          `json:"most_active_account"`
	PrimaryCurrency        domain.Currency `json:"primary_currency"`
}

type CurrencyBreakdownEntry struct {
	Currency          domain.Currency `json:"currency"`
	Balance           decimal.Decimal `json:"balance"`
	TransactionVolume decimal.Decimal `json:"transaction_volume"`
	TransactionCount  int             `json:"transaction_count"`
	MarketShare       float64         `json:"market_share"`
}

type RiskSummary struct {
	OverallRiskLevel        domain.RiskLevel `json:"overall_risk_level"`
	OverallRiskScore        float64          `json:"overall_risk_score"`
	LiquidityRisk           float64          `json:"liquidity_risk"`
	ConcentrationRisk       float64          `json:"concentration_risk"`
	VolatilityRisk          float64          `json:"volatility_risk"`
	LowBalanceAccountsCount int              `json:"low_balance_accounts_count"`
}

type DetailedPayload struct {
	ReportInfo ReportInfo            `json:"report_info"`
	Analytics  domain.AnalyticsData  `json:"analytics"`
	Metadata   domain.ReportMetadata `json:"metadata"`
}

type AnalyticsPayload struct {
	ReportInfo                 ReportInfo                      `json:"report_info"`
	TransactionVolumeAnalysis  []domain.TransactionVolumeData  `json:"transaction_volume_analysis"`
	AccountPerformanceAnalysis []domain.AccountPerformanceData `json:"account_performance_analysis"`
	CurrencyAnalytics          []domain.CurrencyAnalyticsData  `json:"currency_analytics"`
	TrendAnalysis              domain.TrendData                `json:"trend_analysis"`
	StatisticalSummary         domain.AnalyticsSummary         `json:"statistical_summary"`
}

type RiskPayload struct {
	ReportInfo         ReportInfo          `json:"report_info"`
	RiskAssessment     domain.RiskMetrics  `json:"risk_assessment"`
	LowBalanceAccounts []LowBalanceAccount `json:"low_balance_accounts"`
	Recommendations    []string            `json:"recommendations"`
}

type LowBalanceAccount struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Balance  decimal.Decimal    `json:"balance"`
	Currency domain.Currency    `json:"currency"`
	Type     domain.AccountType `json:"type"`
}

type PerformancePayload struct {
	ReportInfo         ReportInfo          `json:"report_info"`
	AccountPerformance []RankedPerformance `json:"account_performance"`
	PerformanceSummary PerformanceSummary  `json:"performance_summary"`
}

// RankedPerformance is a performance row with its rank by absolute net flow.
type RankedPerformance struct {
	domain.AccountPerformanceData
	PerformanceRanking int `json:"performance_ranking"`
}

type PerformanceSummary struct {
	HighPerformers     int    `json:"high_performers"`
	MediumPerformers   int    `json:"medium_performers"`
	LowPerformers      int    `json:"low_performers"`
	TopAccountByVolume string `json:"top_account_by_volume"`
}

type TransactionsPayload struct {
	ReportInfo         ReportInfo          `json:"report_info"`
	Transactions       []TransactionRecord `json:"transactions"`
	TransactionSummary TransactionSummary  `json:"transaction_summary"`
}

// TransactionRecord is a log entry with both counterparties resolved.
type TransactionRecord struct {
	ID                string                   `json:"id"`
	Timestamp         string                   `json:"timestamp"`
	FromAccount       AccountRef               `json:"from_account"`
	ToAccount         AccountRef               `json:"to_account"`
	Amount            decimal.Decimal          `json:"amount"`
	Currency          domain.Currency          `json:"currency"`
	ConvertedAmount   *decimal.Decimal         `json:"converted_amount,omitempty"`
	ConvertedCurrency domain.Currency          `json:"converted_currency,omitempty"`
	ExchangeRate      *decimal.Decimal         `json:"exchange_rate,omitempty"`
	Status            domain.TransactionStatus `json:"status"`
	Note              string                   `json:"note,omitempty"`
}

type AccountRef struct {
	ID   string             `json:"id"`
	Name string             `json:"name"`
	Type domain.AccountType `json:"type,omitempty"`
}

type TransactionSummary struct {
	TotalCount  int                     `json:"total_count"`
	TotalVolume decimal.Decimal         `json:"total_volume"`
	ByStatus    StatusCounts            `json:"by_status"`
	ByCurrency  map[domain.Currency]int `json:"by_currency"`
}

type StatusCounts struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Scheduled int `json:"scheduled"`
	Failed    int `json:"failed"`
}

// ============================================================
// Builders
// ============================================================

func buildSummary(info ReportInfo, data domain.AnalyticsData) SummaryPayload {
	breakdown := make([]CurrencyBreakdownEntry, 0, len(data.CurrencyAnalytics))
	for _, c := range data.CurrencyAnalytics {
		breakdown = append(breakdown, CurrencyBreakdownEntry{
			Currency:          c.Currency,
			Balance:           c.TotalBalance,
			TransactionVolume: c.TotalTransactionVolume,
			TransactionCount:  c.TransactionCount,
			MarketShare:       c.MarketShare,
		})
	}

	return SummaryPayload{
		ReportInfo: info,
		SummaryMetrics: SummaryMetrics{
			TotalTransactionVolume: data.Summary.TotalTransactionVolume,
			TotalTransactionCount:  data.Summary.TotalTransactionCount,
			ActiveAccounts:         data.Summary.ActiveAccountsCount,
			AverageTransactionSize: data.Summary.AverageTransactionSize,
			LargestTransaction:     data.Summary.LargestTransaction,
			MostActiveAccount:      data.Summary.MostActiveAccount,
			PrimaryCurrency:        data.Summary.MostUsedCurrency,
		},
		CurrencyBreakdown: breakdown,
		RiskSummary: RiskSummary{
			OverallRiskLevel:        data.RiskMetrics.RiskLevel,
			OverallRiskScore:        data.RiskMetrics.OverallRiskScore,
			LiquidityRisk:           data.RiskMetrics.LiquidityRisk,
			ConcentrationRisk:       data.RiskMetrics.ConcentrationRisk,
			VolatilityRisk:          data.RiskMetrics.VolatilityRisk,
			LowBalanceAccountsCount: len(data.RiskMetrics.LowBalanceAccounts),
		},
	}
}

func buildRisk(info ReportInfo, data domain.AnalyticsData) RiskPayload {
	low := make([]LowBalanceAccount, 0, len(data.RiskMetrics.LowBalanceAccounts))
	for _, acc := range data.RiskMetrics.LowBalanceAccounts {
		low = append(low, LowBalanceAccount{
			ID:       acc.ID,
			Name:     acc.Name,
			Balance:  acc.Balance,
			Currency: acc.Currency,
			Type:     acc.Type,
		})
	}
	return RiskPayload{
		ReportInfo:         info,
		RiskAssessment:     data.RiskMetrics,
		LowBalanceAccounts: low,
		Recommendations:    data.RiskMetrics.Recommendations,
	}
}

// rankByNetFlow orders performance rows by absolute net flow, largest first.
// The sort is stable so equal flows keep their account order.
func rankByNetFlow(rows []domain.AccountPerformanceData) []domain.AccountPerformanceData {
	ranked := make([]domain.AccountPerformanceData, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NetFlow.Abs().GreaterThan(ranked[j].NetFlow.Abs())
	})
	return ranked
}

func buildPerformance(info ReportInfo, data domain.AnalyticsData) PerformancePayload {
	ranked := rankByNetFlow(data.AccountPerformance)

	rows := make([]RankedPerformance, 0, len(ranked))
	var high, medium, low int
	for i, perf := range ranked {
		rows = append(rows, RankedPerformance{AccountPerformanceData: perf, PerformanceRanking: i + 1})
		switch perf.Performance {
		case domain.PerformanceHigh:
			high++
		case domain.PerformanceMedium:
			medium++
		default:
			low++
		}
	}

	top := ""
	if len(ranked) > 0 {
		top = ranked[0].AccountName
	}

	return PerformancePayload{
		ReportInfo:         info,
		AccountPerformance: rows,
		PerformanceSummary: PerformanceSummary{
			HighPerformers:     high,
			MediumPerformers:   medium,
			LowPerformers:      low,
			TopAccountByVolume: top,
		},
	}
}

func buildTransactions(info ReportInfo, accounts []domain.Account, filtered []domain.Transaction) TransactionsPayload {
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}
	ref := func(id string) AccountRef {
		if acc, ok := byID[id]; ok {
			return AccountRef{ID: id, Name: acc.Name, Type: acc.Type}
		}
		return AccountRef{ID: id, Name: "Unknown"}
	}

	records := make([]TransactionRecord, 0, len(filtered))
	totalVolume := decimal.Zero
	var statuses StatusCounts
	byCurrency := map[domain.Currency]int{domain.USD: 0, domain.KES: 0, domain.NGN: 0}
	for _, tx := range filtered {
		records = append(records, TransactionRecord{
			ID:                tx.ID,
			Timestamp:         tx.Timestamp.UTC().Format(time.RFC3339),
			FromAccount:       ref(tx.FromAccountID),
			ToAccount:         ref(tx.ToAccountID),
			Amount:            tx.Amount,
			Currency:          tx.Currency,
			ConvertedAmount:   tx.ConvertedAmount,
			ConvertedCurrency: tx.ConvertedCurrency,
			ExchangeRate:      tx.ExchangeRate,
			Status:            tx.Status,
			Note:              tx.Note,
		})
		totalVolume = totalVolume.Add(tx.Amount)
		switch tx.Status {
		case domain.StatusCompleted:
			statuses.Completed++
		case domain.StatusPending:
			statuses.Pending++
		case domain.StatusScheduled:
			statuses.Scheduled++
		case domain.StatusFailed:
			statuses.Failed++
		}
		byCurrency[tx.Currency]++
	}

	return TransactionsPayload{
		ReportInfo:   info,
		Transactions: records,
		TransactionSummary: TransactionSummary{
			TotalCount:  len(filtered),
			TotalVolume: totalVolume,
			ByStatus:    statuses,
			ByCurrency:  byCurrency,
		},
	}
}
