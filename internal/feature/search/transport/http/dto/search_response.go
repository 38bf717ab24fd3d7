// Package dto defines the JSON shapes for the search endpoints.
package dto

// SearchItem is one ranked search result.
type SearchItem struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Market   string `json:"market"`
	Exchange string `json:"exchange,omitempty"`
}

// SearchResponse wraps the ranked results. The data key is always present,
// as an empty array when nothing matched.
type SearchResponse struct {
	Data []SearchItem `json:"data"`
}
