// Package port defines the interfaces (ports) for the service layer's
// dependencies. Following hexagonal architecture, these ports decouple the
// domain/service layer from concrete implementations.
package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
	"github.com/riwogerald/treasury-movement-simulator/internal/fx"
)

// LedgerStore is the account book: seeded accounts, the append-only
// transaction log, and transfer execution. Implemented by the in-memory
// ledger (or any other store honoring the same atomicity guarantees).
type LedgerStore interface {
	// Accounts returns every account in seed order.
	Accounts() []domain.Account
	// Account returns one account by id.
	Account(id string) (domain.Account, bool)
	// Transactions returns the log in insertion order.
	Transactions() []domain.Transaction
	// RecentTransactions returns the log newest first.
	RecentTransactions() []domain.Transaction
	// Snapshot returns a consistent (accounts, transactions) pair.
	Snapshot() ([]domain.Account, []domain.Transaction)
	// ExecuteTransfer applies a transfer atomically. A rejected transfer
	// returns false plus every failed rule's message, with no side effects.
	ExecuteTransfer(req domain.TransferRequest) (bool, []string)
	// TotalByCurrency sums active-account balances in one currency.
	TotalByCurrency(c domain.Currency) decimal.Decimal
	// SetRates swaps the conversion table used for future transfers.
	SetRates(rates *fx.Table)
}

// RateFetcher retrieves exchange rates from an external feed.
type RateFetcher interface {
	FetchRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
