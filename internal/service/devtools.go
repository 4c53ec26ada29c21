package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// ============================================================
// Dev Tools
// ============================================================

var devNotes = []string{
	"Payroll batch",
	"Vendor settlement",
	"FX rebalance",
	"Float top-up",
	"Intercompany sweep",
	"Supplier prepayment",
	"Liquidity buffer",
	"",
}

// DevGenerateTransactions drives random transfers through the regular
// execution path, so every generated transaction passed validation and
// moved real balances. Rejections are counted, not retried.
func (t *Treasury) DevGenerateTransactions(ctx context.Context, req *domain.DevGenerateTransactionsRequest) (*domain.DevGenerateTransactionsResponse, error) {
	_, span := tracer.Start(ctx, "Treasury.DevGenerateTransactions")
	defer span.End()

	if req.Count <= 0 || req.Count > 100 {
		return nil, &domain.ErrValidation{Field: "count", Message: "must be between 1 and 100"}
	}

	accounts := t.store.Accounts()
	if len(accounts) < 2 {
		return nil, &domain.ErrValidation{Field: "accounts", Message: "at least two accounts required"}
	}

	generated := 0
	rejected := 0
	for i := 0; i < req.Count; i++ {
		from := accounts[rand.Intn(len(accounts))]
		to := accounts[rand.Intn(len(accounts))]
		for to.ID == from.ID {
			to = accounts[rand.Intn(len(accounts))]
		}

		// Between 1% and 20% of the source balance at draw time, so runs of
		// generated transfers reshuffle funds without draining any account.
		pct := decimal.NewFromInt(int64(rand.Intn(20) + 1)).Div(decimal.NewFromInt(100))
		amount := from.Balance.Mul(pct).Round(2)

		ok, _ := t.ExecuteTransfer(ctx, domain.TransferRequest{
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        amount,
			Note:          devNotes[rand.Intn(len(devNotes))],
		})
		if ok {
			generated++
		} else {
			rejected++
		}

		// Refresh balances so later iterations draw from current state.
		accounts = t.store.Accounts()
	}

	t.logger.Info("DEV: transactions generated",
		zap.Int("generated", generated),
		zap.Int("rejected", rejected),
	)

	return &domain.DevGenerateTransactionsResponse{
		Success:   true,
		Generated: generated,
		Rejected:  rejected,
		Message:   fmt.Sprintf("%d transfers executed, %d rejected", generated, rejected),
	}, nil
}
