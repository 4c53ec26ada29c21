package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
	"github.com/riwogerald/treasury-movement-simulator/internal/ledger"
	"github.com/riwogerald/treasury-movement-simulator/internal/seed"
)

func containsError(errs []string, msg string) bool {
	for _, e := range errs {
		if e == msg {
			return true
		}
	}
	return false
}

func TestValidate_ValidTransfer(t *testing.T) {
	req := domain.TransferRequest{
		FromAccountID: "3",
		ToAccountID:   "4",
		Amount:        decimal.NewFromInt(100),
	}

	res := ledger.Validate(req, seed.Accounts(), time.Now())
	if !res.Valid {
		t.Fatalf("expected valid transfer, got errors: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("expected no errors, got %v", res.Errors)
	}
}

func TestValidate_UnknownSourceAccount(t *testing.T) {
	req := domain.TransferRequest{
		FromAccountID: "nope",
		ToAccountID:   "4",
		Amount:        decimal.NewFromInt(100),
	}

	res := ledger.Validate(req, seed.Accounts(), time.Now())
	if res.Valid {
		t.Fatal("expected invalid transfer")
	}
	if !containsError(res.Errors, "Source account not found") {
		t.Errorf("expected source-not-found error, got %v", res.Errors)
	}
}

func TestValidate_UnknownDestinationAccount(t *testing.T) {
	req := domain.TransferRequest{
		FromAccountID: "3",
		ToAccountID:   "nope",
		Amount:        decimal.NewFromInt(100),
	}

	res := ledger.Validate(req, seed.Accounts(), time.Now())
	if !containsError(res.Errors, "Destination account not found") {
		t.Errorf("expected destination-not-found error, got %v", res.Errors)
	}
}

func TestValidate_SelfTransfer(t *testing.T) {
	req := domain.TransferRequest{
		FromAccountID: "3",
		ToAccountID:   "3",
		Amount:        decimal.NewFromInt(100),
	}

	res := ledger.Validate(req, seed.Accounts(), time.Now())
	if res.Valid {
		t.Fatal("expected invalid transfer")
	}
	if !containsError(res.Errors, "Cannot transfer to the same account") {
		t.Errorf("expected self-transfer error, got %v", res.Errors)
	}
	// Both ids resolve to the same existing account; missing-account rules
	// must not fire.
	if containsError(res.Errors, "Source account not found") || containsError(res.Errors, "Destination account not found") {
		t.Errorf("unexpected not-found error for existing account: %v", res.Errors)
	}
}

func TestValidate_NonPositiveAmount(t *testing.T) {
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		req := domain.TransferRequest{
			FromAccountID: "3",
			ToAccountID:   "4",
			Amount:        amount,
		}

		res := ledger.Validate(req, seed.Accounts(), time.Now())
		if !containsError(res.Errors, "Amount must be greater than zero") {
			t.Errorf("amount %s: expected non-positive-amount error, got %v", amount, res.Errors)
		}
	}
}

func TestValidate_InsufficientFunds(t *testing.T) {
	// Bank_USD_3 holds 8900.
	req := domain.TransferRequest{
		FromAccountID: "5",
		ToAccountID:   "4",
		Amount:        decimal.NewFromInt(9000),
	}

	res := ledger.Validate(req, seed.Accounts(), time.Now())
	if !containsError(res.Errors, "Insufficient funds in source account") {
		t.Errorf("expected insufficient-funds error, got %v", res.Errors)
	}
}

func TestValidate_ScheduledDateInPast(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	req := domain.TransferRequest{
		FromAccountID: "3",
		ToAccountID:   "4",
		Amount:        decimal.NewFromInt(100),
		ScheduledDate: &past,
	}

	res := ledger.Validate(req, seed.Accounts(), now)
	if !containsError(res.Errors, "Scheduled date must be in the future") {
		t.Errorf("expected scheduled-date error, got %v", res.Errors)
	}
}

func TestValidate_ScheduledDateExactlyNowIsRejected(t *testing.T) {
	now := time.Now()
	req := domain.TransferRequest{
		FromAccountID: "3",
		ToAccountID:   "4",
		Amount:        decimal.NewFromInt(100),
		ScheduledDate: &now,
	}

	res := ledger.Validate(req, seed.Accounts(), now)
	if !containsError(res.Errors, "Scheduled date must be in the future") {
		t.Errorf("expected scheduled-date error for non-strictly-future date, got %v", res.Errors)
	}
}

func TestValidate_ErrorsAccumulate(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	req := domain.TransferRequest{
		FromAccountID: "missing",
		ToAccountID:   "missing",
		Amount:        decimal.NewFromInt(-1),
		ScheduledDate: &past,
	}

	res := ledger.Validate(req, seed.Accounts(), time.Now())
	if len(res.Errors) < 4 {
		t.Errorf("expected all failed rules to accumulate, got %v", res.Errors)
	}
}

// The validator does not reject inactive accounts: the UI layer restricts
// pickers to active accounts, but the engine preserves the asymmetry.
func TestValidate_InactiveAccountsAreNotRejected(t *testing.T) {
	accounts := seed.Accounts()
	accounts[2].IsActive = false // Bank_USD_1
	accounts[3].IsActive = false // Bank_USD_2

	req := domain.TransferRequest{
		FromAccountID: accounts[2].ID,
		ToAccountID:   accounts[3].ID,
		Amount:        decimal.NewFromInt(100),
	}

	res := ledger.Validate(req, accounts, time.Now())
	if !res.Valid {
		t.Errorf("expected inactive accounts to pass validation, got %v", res.Errors)
	}
}
