// Package domain defines the core business entities for the treasury
// movement simulator. These models are independent of the transport and
// presentation layers and represent the canonical data structures used
// throughout the service.
package domain

import "github.com/shopspring/decimal"

// ============================================================
// Currencies
// ============================================================

// Currency is a currency code supported by the simulator.
type Currency string

const (
	KES Currency = "KES"
	USD Currency = "USD"
	NGN Currency = "NGN"
)

// Currencies returns every supported currency in canonical reporting order.
func Currencies() []Currency {
	return []Currency{USD, KES, NGN}
}

// Valid reports whether c is a supported currency code.
func (c Currency) Valid() bool {
	switch c {
	case KES, USD, NGN:
		return true
	}
	return false
}

// CurrencyInfo carries display metadata for a currency.
type CurrencyInfo struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// CurrencyDetails maps each supported currency to its display metadata.
var CurrencyDetails = map[Currency]CurrencyInfo{
	KES: {Symbol: "KSh", Name: "Kenyan Shilling"},
	USD: {Symbol: "$", Name: "US Dollar"},
	NGN: {Symbol: "₦", Name: "Nigerian Naira"},
}

// ============================================================
// Accounts
// ============================================================

// AccountType classifies an account by its funding channel.
type AccountType string

const (
	AccountMpesa     AccountType = "Mpesa"
	AccountBank      AccountType = "Bank"
	AccountWallet    AccountType = "Wallet"
	AccountCorporate AccountType = "Corporate"
)

// Account is a treasury account holding a balance in a single currency.
// Balance is denominated in the account's own currency and is mutated only
// by the ledger's transfer execution. Accounts are never deleted during a
// session; IsActive=false excludes an account from new transfers and from
// most aggregates, but not from history lookups.
type Account struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Currency Currency        `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	Type     AccountType     `json:"type"`
	IsActive bool            `json:"isActive"`
}

// ExchangeRate is a directed conversion multiplier between two currencies.
// Rate tables are not guaranteed to be reciprocal-consistent: USD→KES and
// KES→USD are independently specified, not each other's inverse.
type ExchangeRate struct {
	From Currency        `json:"from"`
	To   Currency        `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}
