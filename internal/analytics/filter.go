// Package analytics derives volume, performance, currency, risk, trend and
// summary metrics from a ledger snapshot. Every function is pure: it takes
// the (accounts, transactions) pair plus a date window and returns value
// objects, resolving empty or degenerate input to zero values instead of
// failing. Absence of data is itself a valid, representable answer.
package analytics

import (
	"time"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// DayFormat is the UTC calendar-day bucket key layout.
const DayFormat = "2006-01-02"

// FormatDay returns the UTC calendar day a timestamp falls on.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// FilterByDateRange keeps transactions whose timestamp falls inside the
// inclusive window.
func FilterByDateRange(transactions []domain.Transaction, r domain.DateRange) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if r.Contains(tx.Timestamp) {
			out = append(out, tx)
		}
	}
	return out
}

// FilterByCurrency keeps transactions denominated in the given currency.
func FilterByCurrency(transactions []domain.Transaction, c domain.Currency) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Currency == c {
			out = append(out, tx)
		}
	}
	return out
}

// FilterByAccount keeps transactions touching the account on either side.
func FilterByAccount(transactions []domain.Transaction, accountID string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.FromAccountID == accountID || tx.ToAccountID == accountID {
			out = append(out, tx)
		}
	}
	return out
}

func activeAccounts(accounts []domain.Account) []domain.Account {
	out := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}
