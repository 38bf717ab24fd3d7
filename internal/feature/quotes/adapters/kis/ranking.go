package kis

import (
	"context"
	"log/slog"
	"net/url"

	"invest_backend/internal/feature/quotes/adapters/kis/dto"
	"invest_backend/internal/feature/quotes/domain/entity"
)

const (
	pathFluctuation = "/uapi/domestic-stock/v1/ranking/fluctuation"
	trFluctuation   = "FHPST01700000"

	pathVolumeRank = "/uapi/domestic-stock/v1/quotations/volume-rank"
	trVolumeRank   = "FHPST01710000"

	pathOverseasUpdown = "/uapi/overseas-stock/v1/ranking/updown-rate"
	trOverseasUpdown   = "HHDFS76290000"

	pathOverseasVolume = "/uapi/overseas-stock/v1/ranking/trade-vol"
	trOverseasVolume   = "HHDFS76310010"
)

// GetFluctuationRanking returns quotes ordered by change rate, rising or
// falling first depending on direction.
func (c *Client) GetFluctuationRanking(ctx context.Context, market entity.Market, direction entity.Direction) ([]entity.Quote, error) {
	if market == entity.MarketOverseas {
		return c.overseasRanking(ctx, pathOverseasUpdown, trOverseasUpdown, direction)
	}

	q := url.Values{}
	q.Set("fid_cond_mrkt_div_code", "J")
	q.Set("fid_input_iscd", "0000") // 전체
	if direction == entity.DirectionFall {
		q.Set("fid_rank_sort_cls_code", "1") // 하락율순
	} else {
		q.Set("fid_rank_sort_cls_code", "0") // 상승율순
	}

	var body dto.FluctuationRankingResponse
	if err := c.getJSON(ctx, pathFluctuation, trFluctuation, q, &body); err != nil {
		return nil, c.wrapErr("", pathFluctuation, err)
	}

	out := make([]entity.Quote, 0, len(body.Output))
	for _, row := range body.Output {
		quote, err := domesticQuote(row.StockCode, row.Name, row.Price, row.ChangeRate, row.Volume)
		if err != nil {
			slog.Warn("skipping unparsable ranking row", "symbol", row.StockCode, "error", err)
			continue
		}
		out = append(out, quote)
	}
	return out, nil
}

// GetVolumeRanking returns quotes ordered by accumulated trading volume.
func (c *Client) GetVolumeRanking(ctx context.Context, market entity.Market) ([]entity.Quote, error) {
	if market == entity.MarketOverseas {
		return c.overseasRanking(ctx, pathOverseasVolume, trOverseasVolume, "")
	}

	q := url.Values{}
	q.Set("FID_COND_MRKT_DIV_CODE", "J")
	q.Set("FID_INPUT_ISCD", "0000") // 전체
	q.Set("FID_BLNG_CLS_CODE", "0") // 평균거래량순

	var body dto.VolumeRankingResponse
	if err := c.getJSON(ctx, pathVolumeRank, trVolumeRank, q, &body); err != nil {
		return nil, c.wrapErr("", pathVolumeRank, err)
	}

	out := make([]entity.Quote, 0, len(body.Output))
	for _, row := range body.Output {
		quote, err := domesticQuote(row.StockCode, row.Name, row.Price, row.ChangeRate, row.Volume)
		if err != nil {
			slog.Warn("skipping unparsable ranking row", "symbol", row.StockCode, "error", err)
			continue
		}
		out = append(out, quote)
	}
	return out, nil
}

// overseasRanking serves both overseas ranking families; they share one
// response shape. An empty direction means the endpoint's natural order.
func (c *Client) overseasRanking(ctx context.Context, path, trID string, direction entity.Direction) ([]entity.Quote, error) {
	q := url.Values{}
	q.Set("AUTH", "")
	q.Set("EXCD", "NAS")
	if direction == entity.DirectionFall {
		q.Set("GUBN", "0") // 하락율순
	} else if direction == entity.DirectionRise {
		q.Set("GUBN", "1") // 상승율순
	}

	var body dto.OverseasRankingResponse
	if err := c.getJSON(ctx, path, trID, q, &body); err != nil {
		return nil, c.wrapErr("", path, err)
	}

	out := make([]entity.Quote, 0, len(body.Output))
	for _, row := range body.Output {
		quote, err := overseasQuote(row.Symbol, row.Name, "NAS", row.Last, row.ChangeRate, row.Volume)
		if err != nil {
			slog.Warn("skipping unparsable ranking row", "symbol", row.Symbol, "error", err)
			continue
		}
		out = append(out, quote)
	}
	return out, nil
}
