// Package ledger owns the account set and the append-only transaction log,
// and is the sole authority for applying transfers. A Ledger is an explicit
// owned instance (constructor-injected seed, no package-level singleton) so
// tests and callers can build isolated ledgers.
package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
	"github.com/riwogerald/treasury-movement-simulator/internal/fx"
)

// Ledger is the mutable in-memory store of accounts and transactions.
// The mutex guards the accounts/transactions pair as a unit: a transfer's
// two balance mutations and its transaction append are one critical
// section, so readers never observe a half-applied transfer.
type Ledger struct {
	mu           sync.RWMutex
	accounts     []domain.Account
	transactions []domain.Transaction

	rates  *fx.Table
	logger *zap.Logger
	now    func() time.Time
}

// New creates a ledger seeded with the given accounts and rate table.
// The seed slice is copied; the caller's slice is not retained.
func New(accounts []domain.Account, rates *fx.Table, logger *zap.Logger) *Ledger {
	seeded := make([]domain.Account, len(accounts))
	copy(seeded, accounts)
	return &Ledger{
		accounts: seeded,
		rates:    rates,
		logger:   logger,
		now:      time.Now,
	}
}

// SetRates swaps the rate table used for future conversions. Transactions
// already recorded keep the rate they were executed at.
func (l *Ledger) SetRates(rates *fx.Table) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rates = rates
}

// SetNowFunc overrides the ledger's clock. Test hook.
func (l *Ledger) SetNowFunc(fn func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = fn
}

// ExecuteTransfer validates and applies a transfer. On validation failure it
// returns false with every failed rule's message and produces no side
// effects: no balance changes and no transaction record. On success it
// debits the source by the raw amount, credits the destination by the
// (possibly converted) amount, appends exactly one transaction, and
// returns true.
func (l *Ledger) ExecuteTransfer(req domain.TransferRequest) (bool, []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := Validate(req, l.accounts, l.now())
	if !res.Valid {
		l.logger.Debug("transfer rejected",
			zap.String("from_account", req.FromAccountID),
			zap.String("to_account", req.ToAccountID),
			zap.Strings("errors", res.Errors),
		)
		return false, res.Errors
	}

	fromIdx := l.indexOf(req.FromAccountID)
	toIdx := l.indexOf(req.ToAccountID)
	from := &l.accounts[fromIdx]
	to := &l.accounts[toIdx]

	transferAmount := req.Amount
	var convertedAmount, exchangeRate *decimal.Decimal
	var convertedCurrency domain.Currency

	if from.Currency != to.Currency {
		ca := l.rates.Convert(req.Amount, from.Currency, to.Currency)
		// Derive the recorded rate from the actual converted amount so the
		// triple (amount, rate, convertedAmount) stays self-consistent.
		rate := ca.Div(req.Amount)
		convertedAmount = &ca
		exchangeRate = &rate
		convertedCurrency = to.Currency
		transferAmount = ca
	}

	from.Balance = from.Balance.Sub(req.Amount)
	to.Balance = to.Balance.Add(transferAmount)

	timestamp := l.now()
	status := domain.StatusCompleted
	if req.ScheduledDate != nil {
		timestamp = *req.ScheduledDate
		status = domain.StatusScheduled
	}

	tx := domain.Transaction{
		ID:                uuid.New().String(),
		FromAccountID:     req.FromAccountID,
		ToAccountID:       req.ToAccountID,
		Amount:            req.Amount,
		Currency:          from.Currency,
		ConvertedAmount:   convertedAmount,
		ConvertedCurrency: convertedCurrency,
		ExchangeRate:      exchangeRate,
		Note:              req.Note,
		Timestamp:         timestamp,
		Status:            status,
		ScheduledDate:     req.ScheduledDate,
	}
	l.transactions = append(l.transactions, tx)

	l.logger.Info("transfer executed",
		zap.String("transaction_id", tx.ID),
		zap.String("from_account", from.ID),
		zap.String("to_account", to.ID),
		zap.String("amount", req.Amount.String()),
		zap.String("currency", string(from.Currency)),
		zap.String("status", string(status)),
	)
	return true, nil
}

// indexOf returns the position of an account id. Callers hold the lock and
// have already validated existence.
func (l *Ledger) indexOf(id string) int {
	for i := range l.accounts {
		if l.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// Accounts returns a snapshot of all accounts in seed order.
func (l *Ledger) Accounts() []domain.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Account, len(l.accounts))
	copy(out, l.accounts)
	return out
}

// Account returns the account with the given id.
func (l *Ledger) Account(id string) (domain.Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOf(id); i >= 0 {
		return l.accounts[i], true
	}
	return domain.Account{}, false
}

// Transactions returns a snapshot of the transaction log in insertion
// order, the canonical store order.
func (l *Ledger) Transactions() []domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// RecentTransactions returns the log sorted by timestamp descending.
// Equal timestamps order the later insertion first.
func (l *Ledger) RecentTransactions() []domain.Transaction {
	out := l.Transactions()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return false
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	// Stable sort keeps insertion order within equal timestamps; reverse
	// those runs so the newest insertion leads.
	for i := 0; i < len(out); {
		j := i + 1
		for j < len(out) && out[j].Timestamp.Equal(out[i].Timestamp) {
			j++
		}
		for a, b := i, j-1; a < b; a, b = a+1, b-1 {
			out[a], out[b] = out[b], out[a]
		}
		i = j
	}
	return out
}

// Snapshot returns a consistent (accounts, transactions) pair under a
// single read lock, for the analytics pipeline.
func (l *Ledger) Snapshot() ([]domain.Account, []domain.Transaction) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	accounts := make([]domain.Account, len(l.accounts))
	copy(accounts, l.accounts)
	transactions := make([]domain.Transaction, len(l.transactions))
	copy(transactions, l.transactions)
	return accounts, transactions
}

// TotalByCurrency sums balances over active accounts in the given currency.
// Inactive accounts are excluded here even though the validator does not
// check activity; that asymmetry is intentional.
func (l *Ledger) TotalByCurrency(c domain.Currency) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := decimal.Zero
	for _, a := range l.accounts {
		if a.IsActive && a.Currency == c {
			total = total.Add(a.Balance)
		}
	}
	return total
}
