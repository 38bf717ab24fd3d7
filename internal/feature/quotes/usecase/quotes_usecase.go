package usecase

import (
	"context"
	"strings"
	"time"

	"invest_backend/internal/feature/quotes/domain/entity"
)

// MaxCalendarRange bounds a single market-calendar query.
const MaxCalendarRange = 120 * 24 * time.Hour

// MarketDataRepository abstracts the brokerage quotation API.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketDataRepository interface {
	GetDomesticPrice(ctx context.Context, symbol string) (entity.Quote, error)
	GetDomesticPrices(ctx context.Context, symbols []string) (map[string]entity.Quote, error)
	GetOverseasPrice(ctx context.Context, symbol, exchange string) (entity.Quote, error)
	GetFluctuationRanking(ctx context.Context, market entity.Market, direction entity.Direction) ([]entity.Quote, error)
	GetVolumeRanking(ctx context.Context, market entity.Market) ([]entity.Quote, error)
	GetMarketHolidays(ctx context.Context, market entity.Market, from, to time.Time) ([]time.Time, error)
	GetOverseasNews(ctx context.Context, symbol, exchange string) ([]entity.NewsItem, error)
}

// QuotesUsecase validates caller input and delegates to the market data
// repository. Malformed input is rejected before any upstream call.
type QuotesUsecase struct {
	market MarketDataRepository
}

// NewQuotesUsecase creates a new QuotesUsecase with the given repository.
func NewQuotesUsecase(market MarketDataRepository) *QuotesUsecase {
	return &QuotesUsecase{market: market}
}

// GetPrice returns the current quote for one symbol on either market side.
func (u *QuotesUsecase) GetPrice(ctx context.Context, market entity.Market, symbol, exchange string) (entity.Quote, error) {
	if !validSymbol(symbol) {
		return entity.Quote{}, ErrInvalidSymbol
	}
	switch market {
	case entity.MarketDomestic:
		return u.market.GetDomesticPrice(ctx, symbol)
	case entity.MarketOverseas:
		if exchange == "" {
			return entity.Quote{}, ErrInvalidExchange
		}
		return u.market.GetOverseasPrice(ctx, symbol, exchange)
	default:
		return entity.Quote{}, ErrUnknownMarket
	}
}

// GetDomesticPrices returns current quotes for a set of domestic symbols.
// Invalid symbols are rejected up front; the repository handles batching.
func (u *QuotesUsecase) GetDomesticPrices(ctx context.Context, symbols []string) (map[string]entity.Quote, error) {
	for _, s := range symbols {
		if !validSymbol(s) {
			return nil, ErrInvalidSymbol
		}
	}
	return u.market.GetDomesticPrices(ctx, symbols)
}

// GetFluctuationRanking returns the fluctuation ranking for a market. An empty
// direction defaults to rising.
func (u *QuotesUsecase) GetFluctuationRanking(ctx context.Context, market entity.Market, direction entity.Direction) ([]entity.Quote, error) {
	if market != entity.MarketDomestic && market != entity.MarketOverseas {
		return nil, ErrUnknownMarket
	}
	if direction == "" {
		direction = entity.DirectionRise
	}
	if direction != entity.DirectionRise && direction != entity.DirectionFall {
		return nil, ErrInvalidDirection
	}
	return u.market.GetFluctuationRanking(ctx, market, direction)
}

// GetVolumeRanking returns the volume ranking for a market.
func (u *QuotesUsecase) GetVolumeRanking(ctx context.Context, market entity.Market) ([]entity.Quote, error) {
	if market != entity.MarketDomestic && market != entity.MarketOverseas {
		return nil, ErrUnknownMarket
	}
	return u.market.GetVolumeRanking(ctx, market)
}

// GetMarketHolidays returns non-trading dates within the range. The brokerage
// calendar only covers the domestic market.
func (u *QuotesUsecase) GetMarketHolidays(ctx context.Context, market entity.Market, from, to time.Time) ([]time.Time, error) {
	if market != entity.MarketDomestic {
		return nil, ErrUnsupportedMarket
	}
	if to.Before(from) || to.Sub(from) > MaxCalendarRange {
		return nil, ErrInvalidDateRange
	}
	return u.market.GetMarketHolidays(ctx, market, from, to)
}

// GetOverseasNews returns recent headlines for an overseas symbol.
func (u *QuotesUsecase) GetOverseasNews(ctx context.Context, symbol, exchange string) ([]entity.NewsItem, error) {
	if !validSymbol(symbol) {
		return nil, ErrInvalidSymbol
	}
	if exchange == "" {
		return nil, ErrInvalidExchange
	}
	return u.market.GetOverseasNews(ctx, symbol, exchange)
}

// validSymbol accepts the code shapes both markets use: short, no spaces.
func validSymbol(s string) bool {
	if s == "" || len(s) > 16 {
		return false
	}
	return !strings.ContainsAny(s, " \t\n")
}
