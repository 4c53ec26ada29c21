// Package seed is the fixture collaborator: it provides the initial
// accounts and the exchange-rate table for a simulator session. The core
// never computes seed data itself.
package seed

import (
	"github.com/shopspring/decimal"

	"github.com/riwogerald/treasury-movement-simulator/internal/domain"
)

// Rates returns the fixed directed exchange-rate table. The entries are
// intentionally not reciprocal-consistent.
func Rates() []domain.ExchangeRate {
	return []domain.ExchangeRate{
		// USD as base
		{From: domain.USD, To: domain.KES, Rate: decimal.RequireFromString("132.50")},
		{From: domain.USD, To: domain.NGN, Rate: decimal.RequireFromString("790.25")},
		// KES conversions
		{From: domain.KES, To: domain.USD, Rate: decimal.RequireFromString("0.0075")},
		{From: domain.KES, To: domain.NGN, Rate: decimal.RequireFromString("5.96")},
		// NGN conversions
		{From: domain.NGN, To: domain.USD, Rate: decimal.RequireFromString("0.00127")},
		{From: domain.NGN, To: domain.KES, Rate: decimal.RequireFromString("0.168")},
	}
}

// Accounts returns the fixed initial account set for a session.
func Accounts() []domain.Account {
	return []domain.Account{
		{ID: "1", Name: "Mpesa_KES_1", Currency: domain.KES, Balance: decimal.NewFromInt(125000), Type: domain.AccountMpesa, IsActive: true},
		{ID: "2", Name: "Mpesa_KES_2", Currency: domain.KES, Balance: decimal.NewFromInt(89500), Type: domain.AccountMpesa, IsActive: true},
		{ID: "3", Name: "Bank_USD_1", Currency: domain.USD, Balance: decimal.NewFromInt(15750), Type: domain.AccountBank, IsActive: true},
		{ID: "4", Name: "Bank_USD_2", Currency: domain.USD, Balance: decimal.NewFromInt(32100), Type: domain.AccountBank, IsActive: true},
		{ID: "5", Name: "Bank_USD_3", Currency: domain.USD, Balance: decimal.NewFromInt(8900), Type: domain.AccountBank, IsActive: true},
		{ID: "6", Name: "Wallet_NGN_1", Currency: domain.NGN, Balance: decimal.NewFromInt(2450000), Type: domain.AccountWallet, IsActive: true},
		{ID: "7", Name: "Wallet_NGN_2", Currency: domain.NGN, Balance: decimal.NewFromInt(1875000), Type: domain.AccountWallet, IsActive: true},
		{ID: "8", Name: "Corporate_KES_1", Currency: domain.KES, Balance: decimal.NewFromInt(450000), Type: domain.AccountCorporate, IsActive: true},
		{ID: "9", Name: "Corporate_USD_1", Currency: domain.USD, Balance: decimal.NewFromInt(67500), Type: domain.AccountCorporate, IsActive: true},
		{ID: "10", Name: "Corporate_NGN_1", Currency: domain.NGN, Balance: decimal.NewFromInt(5200000), Type: domain.AccountCorporate, IsActive: true},
	}
}
