// Package entity defines the domain entities for currency exchange.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one conversion rate observation.
type ExchangeRate struct {
	From string // ISO 4217 code, e.g. "USD"
	To   string // ISO 4217 code, e.g. "KRW"
	Rate decimal.Decimal
	AsOf time.Time
}

// Fresh reports whether the observation is still inside the staleness window
// at the given instant.
func (r ExchangeRate) Fresh(now time.Time, window time.Duration) bool {
	if r.AsOf.IsZero() {
		return false
	}
	return now.Sub(r.AsOf) <= window
}
