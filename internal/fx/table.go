// Package fx provides the currency conversion table: a static, directed
// from/to/rate lookup used for all cross-currency math in the ledger.
package fx

import (
	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

type pair struct {
	from, to domain.Currency
}

// Table is a directed exchange-rate lookup. Entries are independent
// multipliers: the table is not reciprocal-consistent and must not be
// symmetrized (policy, not a bug).
type Table struct {
	rates map[pair]decimal.Decimal
}

// NewTable builds a table from directed rate entries. Later entries for the
// same pair overwrite earlier ones.
func NewTable(entries []domain.ExchangeRate) *Table {
	t := &Table{rates: make(map[pair]decimal.Decimal, len(entries))}
	for _, e := range entries {
		t.rates[pair{e.From, e.To}] = e.Rate
	}
	return t
}

// Rate returns the directed multiplier from one currency to another.
// Identical currencies convert at 1. A missing pair also resolves to 1:
// this silent fallback is a known policy carried over from the seed data
// contract; downstream numbers depend on it, so it must not become an error.
func (t *Table) Rate(from, to domain.Currency) decimal.Decimal {
	if from == to {
		return decimal.NewFromInt(1)
	}
	if r, ok := t.rates[pair{from, to}]; ok {
		return r
	}
	return decimal.NewFromInt(1)
}

// Convert expresses amount (denominated in from) in to-currency terms.
// No rounding is applied; display formatting is a caller concern.
func (t *Table) Convert(amount decimal.Decimal, from, to domain.Currency) decimal.Decimal {
	return amount.Mul(t.Rate(from, to))
}

// Entries returns the table's directed entries, one per pair, in
// unspecified order.
func (t *Table) Entries() []domain.ExchangeRate {
	out := make([]domain.ExchangeRate, 0, len(t.rates))
	for p, r := range t.rates {
		out = append(out, domain.ExchangeRate{From: p.from, To: p.to, Rate: r})
	}
	return out
}
