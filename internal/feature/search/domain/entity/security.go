// Package entity defines the securities-master domain types.
package entity

// Security is one row of the securities master: a tradable instrument
// identified by its ticker code.
type Security struct {
	Code     string // ticker, e.g. "005930" or "AAPL"
	Name     string // display name, e.g. "삼성전자"
	Market   string // "domestic" or "overseas"
	Exchange string // exchange code for overseas symbols, e.g. "NAS"
}

// SearchCandidate is a Security paired with a relevance score for one query.
// The score is derived per query and never persisted.
type SearchCandidate struct {
	Security
	Score int
}
