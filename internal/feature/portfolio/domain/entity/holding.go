// Package entity defines the portfolio domain types.
package entity

import "github.com/shopspring/decimal"

// Holding is one household member's position in one instrument. AverageCost
// is the per-share cost basis recorded in the household's base currency at
// purchase time; Currency is the currency the instrument trades in.
type Holding struct {
	MemberID    uint
	MemberName  string
	Symbol      string
	Exchange    string // exchange code for overseas symbols, empty for domestic
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
	Currency    string // trading currency, e.g. "KRW", "USD"
	AssetClass  string // e.g. "equity", "etf", "bond"
	RiskLevel   string // e.g. "low", "medium", "high"
}
