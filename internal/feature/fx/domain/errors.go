// Package domain defines domain-level errors for currency exchange.
package domain

import "errors"

// ErrRateUnavailable is returned when no exchange rate within the staleness
// window can be obtained. Aggregation refuses to misstate foreign-currency
// value with an unknown or outdated rate.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrInvalidCurrency is returned for a malformed currency code.
var ErrInvalidCurrency = errors.New("invalid currency code")
