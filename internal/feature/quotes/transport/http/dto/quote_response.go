// Package dto defines the JSON shapes for the market data endpoints.
package dto

// QuoteItem is one price snapshot. Price and change rate are serialized as
// decimal strings to avoid float rounding in clients.
type QuoteItem struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name,omitempty"`
	Price      string `json:"price"`
	Currency   string `json:"currency"`
	ChangeRate string `json:"changeRate"`
	Volume     int64  `json:"volume"`
	AsOf       string `json:"asOf"`
}

// RankingResponse wraps an ordered ranking. Order is meaningful.
type RankingResponse struct {
	Data []QuoteItem `json:"data"`
}

// HolidaysResponse lists non-trading dates as YYYY-MM-DD strings.
type HolidaysResponse struct {
	Data []string `json:"data"`
}

// NewsItemResponse is one news headline.
type NewsItemResponse struct {
	Symbol      string `json:"symbol"`
	Title       string `json:"title"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"publishedAt"`
}

// NewsResponse wraps the headlines for one symbol.
type NewsResponse struct {
	Data []NewsItemResponse `json:"data"`
}
