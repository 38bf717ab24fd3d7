package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	fxentity "invest_backend/internal/feature/fx/domain/entity"
	"invest_backend/internal/feature/portfolio/domain/entity"
	quotesentity "invest_backend/internal/feature/quotes/domain/entity"
)

// HoldingRepository loads a household's holdings.
type HoldingRepository interface {
	ListByHousehold(ctx context.Context, householdID uint) ([]entity.Holding, error)
}

// QuoteService provides current prices for the held instruments.
type QuoteService interface {
	GetDomesticPrices(ctx context.Context, symbols []string) (map[string]quotesentity.Quote, error)
	GetOverseasPrice(ctx context.Context, symbol, exchange string) (quotesentity.Quote, error)
}

// RateService provides the currency conversion rate for foreign holdings.
type RateService interface {
	GetRate(ctx context.Context, from, to string) (fxentity.ExchangeRate, error)
}

// DashboardUsecase assembles the dashboard summary: it loads holdings,
// gathers quotes and the conversion rate, and delegates the arithmetic to
// the Aggregator.
type DashboardUsecase struct {
	holdings HoldingRepository
	quotes   QuoteService
	rates    RateService
	agg      *Aggregator
	base     string
}

func NewDashboardUsecase(holdings HoldingRepository, quotes QuoteService, rates RateService, agg *Aggregator) *DashboardUsecase {
	return &DashboardUsecase{
		holdings: holdings,
		quotes:   quotes,
		rates:    rates,
		agg:      agg,
		base:     agg.base,
	}
}

// GetSummary values one household's portfolio. Quote failures degrade to
// missing prices in the summary; a missing conversion rate for foreign
// holdings is a hard failure since money figures must not be guessed.
// The rate actually used is returned alongside the summary for display.
func (u *DashboardUsecase) GetSummary(ctx context.Context, householdID uint) (entity.PortfolioSummary, fxentity.ExchangeRate, error) {
	holdings, err := u.holdings.ListByHousehold(ctx, householdID)
	if err != nil {
		return entity.PortfolioSummary{}, fxentity.ExchangeRate{}, fmt.Errorf("load holdings: %w", err)
	}

	quotes := u.collectQuotes(ctx, holdings)

	var rate fxentity.ExchangeRate
	if foreign := foreignCurrency(holdings, u.base); foreign != "" {
		rate, err = u.rates.GetRate(ctx, foreign, u.base)
		if err != nil {
			return entity.PortfolioSummary{}, fxentity.ExchangeRate{}, err
		}
	}

	summary, err := u.agg.Summarize(holdings, quotes, rate)
	if err != nil {
		return entity.PortfolioSummary{}, fxentity.ExchangeRate{}, err
	}
	return summary, rate, nil
}

// collectQuotes fetches prices for every held symbol. Failures are logged
// and the affected symbols left out; the aggregator reports them as missing
// rather than failing the whole dashboard.
func (u *DashboardUsecase) collectQuotes(ctx context.Context, holdings []entity.Holding) map[string]quotesentity.Quote {
	quotes := make(map[string]quotesentity.Quote, len(holdings))

	var domestic []string
	for _, h := range holdings {
		if h.Currency == u.base {
			domestic = append(domestic, h.Symbol)
		}
	}
	if len(domestic) > 0 {
		batch, err := u.quotes.GetDomesticPrices(ctx, domestic)
		if err != nil {
			slog.Warn("domestic price batch failed", "symbols", len(domestic), "error", err)
		}
		for symbol, q := range batch {
			quotes[symbol] = q
		}
	}

	for _, h := range holdings {
		if h.Currency == u.base {
			continue
		}
		if _, ok := quotes[h.Symbol]; ok {
			continue
		}
		q, err := u.quotes.GetOverseasPrice(ctx, h.Symbol, h.Exchange)
		if err != nil {
			slog.Warn("overseas price fetch failed", "symbol", h.Symbol, "exchange", h.Exchange, "error", err)
			continue
		}
		quotes[h.Symbol] = q
	}
	return quotes
}

// foreignCurrency picks the conversion currency for this household: the
// alphabetically first non-base currency among its holdings, or empty when
// everything is in the base currency.
func foreignCurrency(holdings []entity.Holding, base string) string {
	seen := map[string]struct{}{}
	for _, h := range holdings {
		if h.Currency != base {
			seen[h.Currency] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return ""
	}
	currencies := make([]string, 0, len(seen))
	for c := range seen {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies[0]
}
