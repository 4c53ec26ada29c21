package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// ValidationResult is the outcome of checking a prospective transfer.
// Valid is true iff Errors is empty.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks a transfer request against the current account set.
// Every rule is evaluated independently and errors accumulate; validation
// never short-circuits, so the caller can surface all failures at once.
//
// The solvency rule compares the raw amount against the source balance:
// amount is always denominated in the source account's currency, so
// conversion is irrelevant here. Inactive accounts are deliberately not
// rejected; account pickers restrict to active accounts upstream, and the
// validator preserves that asymmetry pending product clarification.
func Validate(req domain.TransferRequest, accounts []domain.Account, now time.Time) ValidationResult {
	var errs []string

	var from, to *domain.Account
	for i := range accounts {
		if accounts[i].ID == req.FromAccountID {
			from = &accounts[i]
		}
		if accounts[i].ID == req.ToAccountID {
			to = &accounts[i]
		}
	}

	if from == nil {
		errs = append(errs, "Source account not found")
	}
	if to == nil {
		errs = append(errs, "Destination account not found")
	}

	if req.FromAccountID == req.ToAccountID {
		errs = append(errs, "Cannot transfer to the same account")
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "Amount must be greater than zero")
	}

	if from != nil && req.Amount.GreaterThan(from.Balance) {
		errs = append(errs, "Insufficient funds in source account")
	}

	if req.ScheduledDate != nil && !req.ScheduledDate.After(now) {
		errs = append(errs, "Scheduled date must be in the future")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
