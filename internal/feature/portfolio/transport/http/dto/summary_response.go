// Package dto defines the JSON shapes for the dashboard endpoints.
package dto

// BucketItem is one grouping row: value and share of the portfolio total.
// Money figures are serialized as decimal strings to avoid float rounding
// in clients.
type BucketItem struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	Percentage string `json:"percentage"`
}

// ExchangeRateItem is the conversion rate used for foreign holdings.
type ExchangeRateItem struct {
	From string `json:"from"`
	To   string `json:"to"`
	Rate string `json:"rate"`
	AsOf string `json:"asOf"`
}

// SummaryResponse is the dashboard summary payload.
type SummaryResponse struct {
	TotalInvested     string            `json:"totalInvested"`
	TotalValue        string            `json:"totalValue"`
	TotalReturn       string            `json:"totalReturn"`
	ReturnRate        string            `json:"returnRate"`
	ByMember          []BucketItem      `json:"byMember"`
	ByAssetClass      []BucketItem      `json:"byAssetClass"`
	ByRiskLevel       []BucketItem      `json:"byRiskLevel"`
	MissingPriceCount int               `json:"missingPriceCount"`
	ExchangeRate      *ExchangeRateItem `json:"exchangeRate,omitempty"`
}
