package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Transactions
// ============================================================

// TransactionStatus is the lifecycle state of a recorded transaction.
// The status is decided once at creation time; there is no background
// processor that later transitions scheduled transactions to completed.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusScheduled TransactionStatus = "scheduled"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is an immutable record of an executed transfer. Amount is
// denominated in the source account's currency. The conversion fields are
// populated iff the source and destination currencies differ, in which
// case ConvertedAmount = Amount × ExchangeRate.
type Transaction struct {
	ID                string            `json:"id"`
	FromAccountID     string            `json:"fromAccountId"`
	ToAccountID       string            `json:"toAccountId"`
	Amount            decimal.Decimal   `json:"amount"`
	Currency          Currency          `json:"currency"`
	ConvertedAmount   *decimal.Decimal  `json:"convertedAmount,omitempty"`
	ConvertedCurrency Currency          `json:"convertedCurrency,omitempty"`
	ExchangeRate      *decimal.Decimal  `json:"exchangeRate,omitempty"`
	Note              string            `json:"note,omitempty"`
	Timestamp         time.Time         `json:"timestamp"`
	Status            TransactionStatus `json:"status"`
	ScheduledDate     *time.Time        `json:"scheduledDate,omitempty"`
}

// CrossCurrency reports whether the transaction converted between currencies.
func (t Transaction) CrossCurrency() bool {
	return t.ConvertedAmount != nil
}

// Destination returns the amount credited to the destination account:
// the converted amount for cross-currency transfers, the raw amount otherwise.
func (t Transaction) Destination() decimal.Decimal {
	if t.ConvertedAmount != nil {
		return *t.ConvertedAmount
	}
	return t.Amount
}

// TransferRequest is the payload to execute a transfer between two accounts.
// Amount is denominated in the source account's currency. A ScheduledDate in
// the future records the transaction with status "scheduled" and the
// scheduled date as its timestamp.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
	ScheduledDate *time.Time      `json:"scheduledDate,omitempty"`
}

// FilterOptions narrows a transaction history query. Zero values mean
// "no filter" for the respective field.
type FilterOptions struct {
	Currency   Currency          `json:"currency,omitempty"`
	AccountID  string            `json:"accountId,omitempty"`
	DateFrom   *time.Time        `json:"dateFrom,omitempty"`
	DateTo     *time.Time        `json:"dateTo,omitempty"`
	SearchTerm string            `json:"searchTerm,omitempty"`
	Status     TransactionStatus `json:"status,omitempty"`
}
