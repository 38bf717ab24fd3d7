// Package domain defines portfolio domain errors.
package domain

import (
	"fmt"
	"time"
)

// StaleRateError reports that a foreign-currency holding could not be valued
// because the available exchange rate is older than the staleness window.
// Aggregation refuses to convert money figures with an outdated rate.
type StaleRateError struct {
	Pair   string
	AsOf   time.Time
	Window time.Duration
}

func (e *StaleRateError) Error() string {
	return fmt.Sprintf("exchange rate %s from %s is older than %s", e.Pair, e.AsOf.Format(time.RFC3339), e.Window)
}
