package kis

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"invest_backend/internal/feature/quotes/adapters/kis/dto"
	"invest_backend/internal/feature/quotes/domain/entity"
)

const (
	pathHoliday = "/uapi/domestic-stock/v1/quotations/chk-holiday"
	trHoliday   = "CTCA0903R"
)

const kisDateLayout = "20060102"

// GetMarketHolidays returns the dates within [from, to] on which the market
// does not open. The calendar endpoint is domestic-only; overseas callers are
// rejected by the usecase layer before reaching here.
func (c *Client) GetMarketHolidays(ctx context.Context, market entity.Market, from, to time.Time) ([]time.Time, error) {
	q := url.Values{}
	q.Set("BASS_DT", from.Format(kisDateLayout))
	q.Set("CTX_AREA_NK", "")
	q.Set("CTX_AREA_FK", "")

	var body dto.HolidayResponse
	if err := c.getJSON(ctx, pathHoliday, trHoliday, q, &body); err != nil {
		return nil, c.wrapErr("", pathHoliday, err)
	}

	holidays := make([]time.Time, 0, len(body.Output))
	for _, day := range body.Output {
		if day.OpenYn == "Y" {
			continue
		}
		d, err := time.Parse(kisDateLayout, day.Date)
		if err != nil {
			return nil, c.wrapErr("", pathHoliday, fmt.Errorf("parse date %q: %w", day.Date, err))
		}
		if d.Before(from) || d.After(to) {
			continue
		}
		holidays = append(holidays, d)
	}
	return holidays, nil
}
