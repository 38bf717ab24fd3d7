// Package domain defines domain-level errors for market data retrieval.
package domain

import (
	"errors"
	"fmt"
)

// ErrMarketDataUnavailable is the sentinel matched by errors.Is for any quote
// or ranking that could not be retrieved within the retry budget.
var ErrMarketDataUnavailable = errors.New("market data unavailable")

// MarketDataError reports a failed upstream call with enough context (symbol,
// endpoint, attempt count) for the caller to decide partial-render vs. full
// failure. It matches ErrMarketDataUnavailable via errors.Is.
type MarketDataError struct {
	Symbol   string // empty for endpoint-level failures (rankings, holidays)
	Endpoint string
	Attempts int
	Err      error
}

func (e *MarketDataError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("market data unavailable: endpoint=%s attempts=%d: %v", e.Endpoint, e.Attempts, e.Err)
	}
	return fmt.Sprintf("market data unavailable: symbol=%s endpoint=%s attempts=%d: %v", e.Symbol, e.Endpoint, e.Attempts, e.Err)
}

func (e *MarketDataError) Unwrap() error { return e.Err }

func (e *MarketDataError) Is(target error) bool { return target == ErrMarketDataUnavailable }
