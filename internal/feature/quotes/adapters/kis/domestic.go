package kis

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"invest_backend/internal/feature/quotes/adapters/kis/dto"
	"invest_backend/internal/feature/quotes/domain/entity"
)

const (
	pathInquirePrice = "/uapi/domestic-stock/v1/quotations/inquire-price"
	trInquirePrice   = "FHKST01010100"

	pathMultiPrice = "/uapi/domestic-stock/v1/quotations/intstock-multprice"
	trMultiPrice   = "FHKST11300006"
)

// GetDomesticPrice fetches the current quote for one domestic symbol.
func (c *Client) GetDomesticPrice(ctx context.Context, symbol string) (entity.Quote, error) {
	q := url.Values{}
	q.Set("FID_COND_MRKT_DIV_CODE", "J") // J: 주식, ETF, ETN
	q.Set("FID_INPUT_ISCD", symbol)

	var body dto.InquirePriceResponse
	if err := c.getJSON(ctx, pathInquirePrice, trInquirePrice, q, &body); err != nil {
		return entity.Quote{}, c.wrapErr(symbol, pathInquirePrice, err)
	}

	quote, err := domesticQuote(symbol, "", body.Output.Price, body.Output.ChangeRate, body.Output.Volume)
	if err != nil {
		return entity.Quote{}, c.wrapErr(symbol, pathInquirePrice, err)
	}
	return quote, nil
}

// GetDomesticPrices fetches current quotes for a set of domestic symbols.
// Symbols are deduplicated and split into sub-batches at the multi-price
// endpoint's documented cap; results are merged by symbol. A failed sub-batch
// loses only its own symbols: the merged map still carries every symbol that
// succeeded, and an error is returned only when no sub-batch succeeded.
func (c *Client) GetDomesticPrices(ctx context.Context, symbols []string) (map[string]entity.Quote, error) {
	unique := dedupe(symbols)
	if len(unique) == 0 {
		return map[string]entity.Quote{}, nil
	}

	batchSize := c.cfg.MaxSymbolsPerCall
	if batchSize <= 0 {
		batchSize = DefaultMaxSymbolsPerCall
	}

	merged := make(map[string]entity.Quote, len(unique))
	var lastErr error
	for start := 0; start < len(unique); start += batchSize {
		end := start + batchSize
		if end > len(unique) {
			end = len(unique)
		}
		batch := unique[start:end]

		quotes, err := c.fetchMultiPrice(ctx, batch)
		if err != nil {
			slog.Warn("domestic multi-price sub-batch failed",
				"symbols", len(batch), "error", err)
			lastErr = err
			continue
		}
		for sym, quote := range quotes {
			merged[sym] = quote
		}
	}

	if len(merged) == 0 && lastErr != nil {
		return nil, c.wrapErr("", pathMultiPrice, lastErr)
	}
	return merged, nil
}

// fetchMultiPrice issues one multi-price call for at most MaxSymbolsPerCall symbols.
func (c *Client) fetchMultiPrice(ctx context.Context, symbols []string) (map[string]entity.Quote, error) {
	q := url.Values{}
	for i, sym := range symbols {
		q.Set(fmt.Sprintf("FID_COND_MRKT_DIV_CODE_%d", i+1), "J")
		q.Set(fmt.Sprintf("FID_INPUT_ISCD_%d", i+1), sym)
	}

	var body dto.MultiPriceResponse
	if err := c.getJSON(ctx, pathMultiPrice, trMultiPrice, q, &body); err != nil {
		return nil, err
	}

	out := make(map[string]entity.Quote, len(body.Output))
	for _, row := range body.Output {
		quote, err := domesticQuote(row.StockCode, row.Name, row.Price, row.ChangeRate, row.Volume)
		if err != nil {
			// One unparsable row should not take down the whole sub-batch.
			slog.Warn("skipping unparsable multi-price row", "symbol", row.StockCode, "error", err)
			continue
		}
		out[row.StockCode] = quote
	}
	return out, nil
}

// domesticQuote builds a Quote from the KIS string fields.
func domesticQuote(symbol, name, price, changeRate, volume string) (entity.Quote, error) {
	p, err := parseDecimal(price)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse price %q: %w", price, err)
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
	return entity.Quote{
		Symbol:     symbol,
		Name:       name,
		Price:      p,
		Currency:   "KRW",
		ChangeRate: cr,
		Volume:     vol,
		AsOf:       time.Now(),
	}, nil
}

// dedupe removes duplicate symbols while preserving first-seen order.
func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
