// Package usecase implements portfolio aggregation: valuing a household's
// holdings against current quotes and producing the dashboard summary.
package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	fxentity "invest_backend/internal/feature/fx/domain/entity"
	"invest_backend/internal/feature/portfolio/domain"
	"invest_backend/internal/feature/portfolio/domain/entity"
	quotesentity "invest_backend/internal/feature/quotes/domain/entity"
)

// DefaultBaseCurrency is the currency all summary figures are stated in.
const DefaultBaseCurrency = "KRW"

// DefaultRateWindow is how old a conversion rate may be before aggregation
// refuses to use it for money figures.
const DefaultRateWindow = time.Hour

var hundred = decimal.NewFromInt(100)

// Aggregator turns holdings plus market data into a PortfolioSummary.
type Aggregator struct {
	base   string
	window time.Duration
}

// NewAggregator creates an Aggregator. Zero arguments fall back to
// DefaultBaseCurrency and DefaultRateWindow.
func NewAggregator(base string, window time.Duration) *Aggregator {
	if base == "" {
		base = DefaultBaseCurrency
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &Aggregator{base: base, window: window}
}

// Summarize values each holding at quantity times quote price, converting
// foreign-currency values with the given rate, and groups current value by
// member, asset class, and risk level. It performs no I/O.
//
// Holdings without a usable price still count toward TotalInvested but are
// excluded from TotalValue and TotalReturn, and reported in
// MissingPriceCount so the caller can disclose the gap instead of showing a
// silently wrong total.
func (a *Aggregator) Summarize(holdings []entity.Holding, quotes map[string]quotesentity.Quote, rate fxentity.ExchangeRate) (entity.PortfolioSummary, error) {
	if hasForeign(holdings, a.base) && !rate.Fresh(time.Now(), a.window) {
		return entity.PortfolioSummary{}, &domain.StaleRateError{
			Pair:   rate.From + "/" + rate.To,
			AsOf:   rate.AsOf,
			Window: a.window,
		}
	}

	var summary entity.PortfolioSummary
	var investedPriced decimal.Decimal
	byMember := map[string]decimal.Decimal{}
	byAssetClass := map[string]decimal.Decimal{}
	byRiskLevel := map[string]decimal.Decimal{}

	for _, h := range holdings {
		invested := h.Quantity.Mul(h.AverageCost)
		summary.TotalInvested = summary.TotalInvested.Add(invested)

		quote, ok := quotes[h.Symbol]
		if !ok {
			summary.MissingPriceCount++
			continue
		}
		value := h.Quantity.Mul(quote.Price)
		if h.Currency != a.base {
			if h.Currency != rate.From || rate.To != a.base {
				// Priced, but in a currency we have no rate for.
				summary.MissingPriceCount++
				continue
			}
			value = value.Mul(rate.Rate)
		}

		summary.TotalValue = summary.TotalValue.Add(value)
		investedPriced = investedPriced.Add(invested)
		byMember[h.MemberName] = byMember[h.MemberName].Add(value)
		byAssetClass[h.AssetClass] = byAssetClass[h.AssetClass].Add(value)
		byRiskLevel[h.RiskLevel] = byRiskLevel[h.RiskLevel].Add(value)
	}

	summary.TotalReturn = summary.TotalValue.Sub(investedPriced)
	if !investedPriced.IsZero() {
		summary.ReturnRate = summary.TotalReturn.Div(investedPriced)
	}

	summary.ByMember = buckets(byMember, summary.TotalValue)
	summary.ByAssetClass = buckets(byAssetClass, summary.TotalValue)
	summary.ByRiskLevel = buckets(byRiskLevel, summary.TotalValue)
	return summary, nil
}

func hasForeign(holdings []entity.Holding, base string) bool {
	for _, h := range holdings {
		if h.Currency != base {
			return true
		}
	}
	return false
}

// buckets converts a label→value map into rows sorted by value descending,
// ties broken by label, so repeated summaries render identically.
func buckets(values map[string]decimal.Decimal, total decimal.Decimal) []entity.Bucket {
	if len(values) == 0 {
		return nil
	}
	out := make([]entity.Bucket, 0, len(values))
	for label, value := range values {
		b := entity.Bucket{Label: label, Value: value}
		if !total.IsZero() {
			b.Percentage = value.Div(total).Mul(hundred).Round(2)
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Value.Equal(out[j].Value) {
			return out[i].Value.GreaterThan(out[j].Value)
		}
		return out[i].Label < out[j].Label
	})
	return out
}
