package kis

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"invest_backend/internal/feature/quotes/adapters/kis/dto"
	"invest_backend/internal/feature/quotes/domain/entity"
)

const (
	pathOverseasNews = "/uapi/overseas-price/v1/quotations/news-title"
	trOverseasNews   = "HHPSTH60100C1"
)

// GetOverseasNews returns recent news headlines for an overseas symbol.
func (c *Client) GetOverseasNews(ctx context.Context, symbol, exchange string) ([]entity.NewsItem, error) {
	q := url.Values{}
	q.Set("INFO_GB", "")
	q.Set("CLASS_CD", "")
	q.Set("NATION_CD", "")
	q.Set("EXCHANGE_CD", exchange)
	q.Set("SYMB", symbol)

	var body dto.NewsResponse
	if err := c.getJSON(ctx, pathOverseasNews, trOverseasNews, q, &body); err != nil {
		return nil, c.wrapErr(symbol, pathOverseasNews, err)
	}

	items := make([]entity.NewsItem, 0, len(body.Output))
	for _, row := range body.Output {
		published, err := time.Parse(kisDateLayout+"150405", row.Date+row.Time)
		if err != nil {
			slog.Warn("skipping news row with unparsable timestamp",
				"symbol", row.Symbol, "date", row.Date, "time", row.Time)
			continue
		}
		items = append(items, entity.NewsItem{
			Symbol:      row.Symbol,
			Title:       row.Title,
			Source:      row.Source,
			PublishedAt: published,
		})
	}
	return items, nil
}
