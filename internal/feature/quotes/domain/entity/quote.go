// Package entity defines the domain entities for market data.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Market identifies which side of the brokerage API a symbol trades on.
type Market string

const (
	MarketDomestic Market = "domestic"
	MarketOverseas Market = "overseas"
)

// Direction selects the ordering of a fluctuation ranking.
type Direction string

const (
	DirectionRise Direction = "rise"
	DirectionFall Direction = "fall"
)

// Quote is an immutable price snapshot for one symbol. It is never mutated
// after creation, only superseded by a newer fetch.
type Quote struct {
	Symbol     string
	Name       string
	Price      decimal.Decimal
	Currency   string
	ChangeRate decimal.Decimal // percent change versus the previous close
	Volume     int64
	AsOf       time.Time
}

// NewsItem is one overseas news headline for a symbol.
type NewsItem struct {
	Symbol      string
	Title       string
	Source      string
	PublishedAt time.Time
}
