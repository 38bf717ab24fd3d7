package kis

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"invest_backend/internal/feature/quotes/adapters/kis/dto"
	"invest_backend/internal/feature/quotes/domain/entity"
)

const (
	pathOverseasPrice = "/uapi/overseas-price/v1/quotations/price"
	trOverseasPrice   = "HHDFS00000300"
)

// exchangeCurrency maps a KIS overseas exchange code to its trading currency.
var exchangeCurrency = map[string]string{
	"NAS": "USD", // NASDAQ
	"NYS": "USD", // NYSE
	"AMS": "USD", // AMEX
	"TSE": "JPY", // 도쿄
	"HKS": "HKD", // 홍콩
	"SHS": "CNY", // 상해
	"SZS": "CNY", // 심천
	"HSX": "VND", // 호치민
	"HNX": "VND", // 하노이
}

// GetOverseasPrice fetches the current quote for one overseas symbol on the
// given exchange.
func (c *Client) GetOverseasPrice(ctx context.Context, symbol, exchange string) (entity.Quote, error) {
	q := url.Values{}
	q.Set("AUTH", "")
	q.Set("EXCD", exchange)
	q.Set("SYMB", symbol)

	var body dto.OverseasPriceResponse
	if err := c.getJSON(ctx, pathOverseasPrice, trOverseasPrice, q, &body); err != nil {
		return entity.Quote{}, c.wrapErr(symbol, pathOverseasPrice, err)
	}

	quote, err := overseasQuote(symbol, "", exchange, body.Output.Last, body.Output.ChangeRate, body.Output.Volume)
	if err != nil {
		return entity.Quote{}, c.wrapErr(symbol, pathOverseasPrice, err)
	}
	return quote, nil
}

// overseasQuote builds a Quote from the KIS overseas string fields. Currency
// is derived from the exchange code; the price endpoint does not return one.
func overseasQuote(symbol, name, exchange, last, changeRate, volume string) (entity.Quote, error) {
	p, err := parseDecimal(last)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse price %q: %w", last, err)
	}
	cr, err := parseDecimal(changeRate)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse change rate %q: %w", changeRate, err)
	}
	var vol int64
	if volume != "" {
		vol, err = strconv.ParseInt(volume, 10, 64)
		if err != nil {
			return entity.Quote{}, fmt.Errorf("parse volume %q: %w", volume, err)
		}
	}
	currency, ok := exchangeCurrency[exchange]
	if !ok {
		currency = "USD"
	}
	return entity.Quote{
		Symbol:     symbol,
		Name:       name,
		Price:      p,
		Currency:   currency,
		ChangeRate: cr,
		Volume:     vol,
		AsOf:       time.Now(),
	}, nil
}
