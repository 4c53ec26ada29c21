package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// CSV flattens a report into comma-separated rows. Summary reports export
// metric/value pairs, performance and transaction reports export one row
// per record, and the remaining types fall back to the ranked performance
// table since their payloads are too nested for a flat file.
func CSV(rep Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	var err error
	switch p := rep.Payload.(type) {
	case SummaryPayload:
		err = writeSummaryCSV(w, p)
	case PerformancePayload:
		err = writePerformanceCSV(w, p.AccountPerformance)
	case TransactionsPayload:
		err = writeTransactionsCSV(w, p)
	case DetailedPayload:
		err = writePerformanceCSV(w, rankedRows(p.Analytics.AccountPerformance))
	case AnalyticsPayload:
		err = writePerformanceCSV(w, rankedRows(p.AccountPerformanceAnalysis))
	case RiskPayload:
		err = writeRiskCSV(w, p)
	default:
		return nil, fmt.Errorf("report: no CSV projection for payload %T", rep.Payload)
	}
	if err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rankedRows(rows []domain.AccountPerformanceData) []RankedPerformance {
	ranked := rankByNetFlow(rows)
	out := make([]RankedPerformance, 0, len(ranked))
	for i, perf := range ranked {
		out = append(out, RankedPerformance{AccountPerformanceData: perf, PerformanceRanking: i + 1})
	}
	return out
}

func writeSummaryCSV(w *csv.Writer, p SummaryPayload) error {
	if err := w.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	m := p.SummaryMetrics
	rows := [][2]string{
		{"total_transaction_volume", m.TotalTransactionVolume.String()},
		{"total_transaction_count", fmt.Sprint(m.TotalTransactionCount)},
		{"active_accounts", fmt.Sprint(m.ActiveAccounts)},
		{"average_transaction_size", m.AverageTransactionSize.String()},
		{"largest_transaction", m.LargestTransaction.String()},
		{"most_active_account", m.MostActiveAccount},
		{"primary_currency", string(m.PrimaryCurrency)},
	}
	for _, row := range rows {
		metric := strings.ToUpper(strings.ReplaceAll(row[0], "_", " "))
		if err := w.Write([]string{metric, row[1]}); err != nil {
			return err
		}
	}
	return nil
}

func writePerformanceCSV(w *csv.Writer, rows []RankedPerformance) error {
	header := []string{
		"account_id", "account_name", "total_inbound", "total_outbound",
		"net_flow", "transaction_count", "average_transaction_size",
		"currency", "performance", "performance_ranking",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.AccountID,
			row.AccountName,
			row.TotalInbound.String(),
			row.TotalOutbound.String(),
			row.NetFlow.String(),
			fmt.Sprint(row.TransactionCount),
			row.AverageTransactionSize.String(),
			string(row.Currency),
			string(row.Performance),
			fmt.Sprint(row.PerformanceRanking),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeTransactionsCSV(w *csv.Writer, p TransactionsPayload) error {
	header := []string{
		"id", "timestamp", "from_account_id", "from_account_name",
		"to_account_id", "to_account_name", "amount", "currency",
		"converted_amount", "converted_currency", "exchange_rate",
		"status", "note",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, tx := range p.Transactions {
		converted, rate := "", ""
		if tx.ConvertedAmount != nil {
			converted = tx.ConvertedAmount.String()
		}
		if tx.ExchangeRate != nil {
			rate = tx.ExchangeRate.String()
		}
		record := []string{
			tx.ID,
			tx.Timestamp,
			tx.FromAccount.ID,
			tx.FromAccount.Name,
			tx.ToAccount.ID,
			tx.ToAccount.Name,
			tx.Amount.String(),
			string(tx.Currency),
			converted,
			string(tx.ConvertedCurrency),
			rate,
			string(tx.Status),
			tx.Note,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeRiskCSV(w *csv.Writer, p RiskPayload) error {
	if err := w.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	r := p.RiskAssessment
	rows := [][2]string{
		{"LIQUIDITY RISK", fmt.Sprintf("%.2f", r.LiquidityRisk)},
		{"CONCENTRATION RISK", fmt.Sprintf("%.2f", r.ConcentrationRisk)},
		{"VOLATILITY RISK", fmt.Sprintf("%.2f", r.VolatilityRisk)},
		{"OVERALL RISK SCORE", fmt.Sprintf("%.2f", r.OverallRiskScore)},
		{"RISK LEVEL", string(r.RiskLevel)},
		{"LOW BALANCE ACCOUNTS", fmt.Sprint(len(p.LowBalanceAccounts))},
	}
	for _, row := range rows {
		if err := w.Write([]string{row[0], row[1]}); err != nil {
			return err
		}
	}
	return nil
}
