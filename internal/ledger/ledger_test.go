package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
	"github.com/riwogerald/treasury-movement-simulator/internal/fx"
	"github.com/riwogerald/treasury-movement-simulator/internal/ledger"
	"github.com/riwogerald/treasury-movement-simulator/internal/seed"
)

func newTestLedger() *ledger.Ledger {
	return ledger.New(seed.Accounts(), fx.NewTable(seed.Rates()), zap.NewNop())
}

func account(t *testing.T, l *ledger.Ledger, id string) domain.Account {
	t.Helper()
	a, ok := l.Account(id)
	if !ok {
		t.Fatalf("account %s not found", id)
	}
	return a
}

func TestExecuteTransfer_SameCurrency(t *testing.T) {
	l := newTestLedger()

	ok, errs := l.ExecuteTransfer(domain.TransferRequest{
		FromAccountID: "3", // Bank_USD_1, 15750
		ToAccountID:   "4", // Bank_USD_2, 32100
		Amount:        decimal.NewFromInt(750),
		Note:          "ops rebalance",
	})
	if !ok {
		t.Fatalf("expected transfer to succeed, got %v", errs)
	}

	if got := account(t, l, "3").Balance; !got.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("expected source balance 15000, got %s", got)
	}
	if got := account(t, l, "4").Balance; !got.Equal(decimal.NewFromInt(32850)) {
		t.Errorf("expected destination balance 32850, got %s", got)
	}

	txs := l.Transactions()
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	tx := txs[0]
	if tx.ID == "" {
		t.Error("expected transaction id to be assigned")
	}
	if tx.Currency != domain.USD {
		t.Errorf("expected currency USD, got %s", tx.Currency)
	}
	if tx.Status != domain.StatusCompleted {
		t.Errorf("expected status completed, got %s", tx.Status)
	}
	if tx.CrossCurrency() {
		t.Error("same-currency transfer must not carry conversion fields")
	}
	if tx.ConvertedCurrency != "" || tx.ExchangeRate != nil {
		t.Error("conversion fields must all be absent for same-currency transfers")
	}
	if tx.Note != "ops rebalance" {
		t.Errorf("expected note to be recorded, got %q", tx.Note)
	}
}

func TestExecuteTransfer_CrossCurrency(t *testing.T) {
	accounts := []domain.Account{
		{ID: "usd", Name: "Bank_USD", Currency: domain.USD, Balance: decimal.NewFromInt(1000), Type: domain.AccountBank, IsActive: true},
		{ID: "kes", Name: "Mpesa_KES", Currency: domain.KES, Balance: decimal.NewFromInt(5000), Type: domain.AccountMpesa, IsActive: true},
	}
	l := ledger.New(accounts, fx.NewTable(seed.Rates()), zap.NewNop())

	ok, errs := l.ExecuteTransfer(domain.TransferRequest{
		FromAccountID: "usd",
		ToAccountID:   "kes",
		Amount:        decimal.NewFromInt(500),
	})
	if !ok {
		t.Fatalf("expected transfer to succeed, got %v", errs)
	}

	if got := account(t, l, "usd").Balance; !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected source balance 500, got %s", got)
	}
	// 500 USD * 132.50 = 66250 KES credited on top of 5000.
	if got := account(t, l, "kes").Balance; !got.Equal(decimal.NewFromInt(71250)) {
		t.Errorf("expected destination balance 71250, got %s", got)
	}

	tx := l.Transactions()[0]
	if tx.ConvertedAmount == nil || !tx.ConvertedAmount.Equal(decimal.NewFromInt(66250)) {
		t.Errorf("expected convertedAmount 66250, got %v", tx.ConvertedAmount)
	}
	if tx.ConvertedCurrency != domain.KES {
		t.Errorf("expected convertedCurrency KES, got %s", tx.ConvertedCurrency)
	}
	if tx.ExchangeRate == nil || !tx.ExchangeRate.Equal(decimal.RequireFromString("132.5")) {
		t.Errorf("expected exchangeRate 132.50, got %v", tx.ExchangeRate)
	}
	if tx.Status != domain.StatusCompleted {
		t.Errorf("expected status completed, got %s", tx.Status)
	}
}

func TestExecuteTransfer_InsufficientFundsHasNoSideEffects(t *testing.T) {
	accounts := []domain.Account{
		{ID: "a", Name: "A", Currency: domain.USD, Balance: decimal.NewFromInt(1000), Type: domain.AccountBank, IsActive: true},
		{ID: "b", Name: "B", Currency: domain.USD, Balance: decimal.NewFromInt(200), Type: domain.AccountBank, IsActive: true},
	}
	l := ledger.New(accounts, fx.NewTable(seed.Rates()), zap.NewNop())

	ok, errs := l.ExecuteTransfer(domain.TransferRequest{
		FromAccountID: "a",
		ToAccountID:   "b",
		Amount:        decimal.NewFromInt(1500),
	})
	if ok {
		t.Fatal("expected transfer to fail")
	}
	if !containsError(errs, "Insufficient funds in source account") {
		t.Errorf("expected insufficient-funds error, got %v", errs)
	}
	if len(l.Transactions()) != 0 {
		t.Error("no transaction may be recorded on failure")
	}
	if got := account(t, l, "a").Balance; !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("source balance must be unchanged, got %s", got)
	}
	if got := account(t, l, "b").Balance; !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("destination balance must be unchanged, got %s", got)
	}
}

func TestExecuteTransfer_NoThirdAccountChanges(t *testing.T) {
	l := newTestLedger()
	before := l.Accounts()

	ok, _ := l.ExecuteTransfer(domain.TransferRequest{
		FromAccountID: "1",
		ToAccountID:   "2",
		Amount:        decimal.NewFromInt(1000),
	})
	if !ok {
		t.Fatal("expected transfer to succeed")
	}

	for _, a := range l.Accounts() {
		if a.ID == "1" || a.ID == "2" {
			continue
		}
		for _, b := range before {
			if b.ID == a.ID && !b.Balance.Equal(a.Balance) {
				t.Errorf("account %s balance changed from %s to %s", a.ID, b.Balance, a.Balance)
			}
		}
	}
}

func TestExecuteTransfer_Scheduled(t *testing.T) {
	l := newTestLedger()
	future := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)

	ok, errs := l.ExecuteTransfer(domain.TransferRequest{
		FromAccountID: "3",
		ToAccountID:   "4",
		Amount:        decimal.NewFromInt(100),
		ScheduledDate: &future,
	})
	if !ok {
		t.Fatalf("expected scheduled transfer to succeed, got %v", errs)
	}

	tx := l.Transactions()[0]
	if tx.Status != domain.StatusScheduled {
		t.Errorf("expected status scheduled, got %s", tx.Status)
	}
	if !tx.Timestamp.Equal(future) {
		t.Errorf("expected timestamp to equal the scheduled date, got %s", tx.Timestamp)
	}
	if tx.ScheduledDate == nil || !tx.ScheduledDate.Equal(future) {
		t.Errorf("expected scheduledDate %s, got %v", future, tx.ScheduledDate)
	}

	// Balances apply immediately; there is no background processor that
	// later flips scheduled transactions to completed.
	if got := account(t, l, "3").Balance; !got.Equal(decimal.NewFromInt(15650)) {
		t.Errorf("expected source balance 15650, got %s", got)
	}
}

func TestRecentTransactions_NewestFirst(t *testing.T) {
	l := newTestLedger()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	l.SetNowFunc(func() time.Time {
		current = current.Add(time.Minute)
		return current
	})

	for i := 0; i < 3; i++ {
		if ok, errs := l.ExecuteTransfer(domain.TransferRequest{
			FromAccountID: "1",
			ToAccountID:   "2",
			Amount:        decimal.NewFromInt(100),
		}); !ok {
			t.Fatalf("transfer %d failed: %v", i, errs)
		}
	}

	recent := l.RecentTransactions()
	if len(recent) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(recent))
	}
	for i := 0; i < len(recent)-1; i++ {
		if recent[i].Timestamp.Before(recent[i+1].Timestamp) {
			t.Errorf("expected timestamp-descending order at index %d", i)
		}
	}

	// Canonical store order stays insertion order.
	stored := l.Transactions()
	if !stored[0].Timestamp.Before(stored[2].Timestamp) {
		t.Error("expected store order to remain insertion order")
	}
}

func TestRecentTransactions_EqualTimestampsNewestInsertionFirst(t *testing.T) {
	l := newTestLedger()
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	l.SetNowFunc(func() time.Time { return fixed })

	l.ExecuteTransfer(domain.TransferRequest{FromAccountID: "1", ToAccountID: "2", Amount: decimal.NewFromInt(100), Note: "first"})
	l.ExecuteTransfer(domain.TransferRequest{FromAccountID: "1", ToAccountID: "2", Amount: decimal.NewFromInt(100), Note: "second"})

	recent := l.RecentTransactions()
	if recent[0].Note != "second" || recent[1].Note != "first" {
		t.Errorf("expected later insertion first on timestamp ties, got %q then %q", recent[0].Note, recent[1].Note)
	}
}

func TestTotalByCurrency_ExcludesInactiveAccounts(t *testing.T) {
	accounts := []domain.Account{
		{ID: "a", Name: "A", Currency: domain.USD, Balance: decimal.NewFromInt(100), Type: domain.AccountBank, IsActive: true},
		{ID: "b", Name: "B", Currency: domain.USD, Balance: decimal.NewFromInt(40), Type: domain.AccountBank, IsActive: false},
		{ID: "c", Name: "C", Currency: domain.KES, Balance: decimal.NewFromInt(7), Type: domain.AccountMpesa, IsActive: true},
	}
	l := ledger.New(accounts, fx.NewTable(seed.Rates()), zap.NewNop())

	if got := l.TotalByCurrency(domain.USD); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected USD total 100 (inactive excluded), got %s", got)
	}
	if got := l.TotalByCurrency(domain.NGN); !got.Equal(decimal.Zero) {
		t.Errorf("expected NGN total 0, got %s", got)
	}
}

func TestTotalByCurrency_Idempotent(t *testing.T) {
	l := newTestLedger()
	first := l.TotalByCurrency(domain.KES)
	second := l.TotalByCurrency(domain.KES)
	if !first.Equal(second) {
		t.Errorf("expected identical results for repeated reads, got %s then %s", first, second)
	}
}
