package entity

import "github.com/shopspring/decimal"

// Bucket is one grouping row of a summary: the summed current value of its
// holdings and that value's share of the portfolio total. Empty buckets are
// omitted from summaries, never zero-padded.
type Bucket struct {
	Label      string
	Value      decimal.Decimal
	Percentage decimal.Decimal // share of TotalValue, 0-100
}

// PortfolioSummary is the aggregated view of one household's holdings, in
// the household's base currency.
type PortfolioSummary struct {
	TotalInvested decimal.Decimal
	TotalValue    decimal.Decimal
	TotalReturn   decimal.Decimal
	ReturnRate    decimal.Decimal // TotalReturn / invested, 0 when nothing invested

	ByMember     []Bucket
	ByAssetClass []Bucket
	ByRiskLevel  []Bucket

	// MissingPriceCount is the number of holdings whose value could not be
	// established (no quote, or no usable conversion rate). These holdings
	// are counted in TotalInvested but not in TotalValue.
	MissingPriceCount int
}
