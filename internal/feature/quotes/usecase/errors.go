// Package usecase implements the business logic for market data operations.
package usecase

import "errors"

// Validation errors. These reject malformed caller input before any upstream
// call is made.
var (
	// ErrInvalidSymbol is returned when a symbol is empty or malformed.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInvalidExchange is returned when an overseas call lacks an exchange code.
	ErrInvalidExchange = errors.New("invalid exchange code")

	// ErrUnknownMarket is returned for a market other than domestic/overseas.
	ErrUnknownMarket = errors.New("unknown market")

	// ErrInvalidDirection is returned for a ranking direction other than rise/fall.
	ErrInvalidDirection = errors.New("invalid ranking direction")

	// ErrInvalidDateRange is returned when a calendar range is reversed or too wide.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrUnsupportedMarket is returned for operations the brokerage only
	// offers on the domestic side, such as the holiday calendar.
	ErrUnsupportedMarket = errors.New("operation not supported for this market")
)
