// Package handler provides the HTTP handlers for market data.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invest_backend/internal/feature/quotes/domain"
	"invest_backend/internal/feature/quotes/domain/entity"
	"invest_backend/internal/feature/quotes/transport/http/dto"
	"invest_backend/internal/feature/quotes/usecase"
)

const dateLayout = "2006-01-02"

// QuotesUsecase is the usecase surface this handler consumes.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type QuotesUsecase interface {
	GetPrice(ctx context.Context, market entity.Market, symbol, exchange string) (entity.Quote, error)
	GetFluctuationRanking(ctx context.Context, market entity.Market, direction entity.Direction) ([]entity.Quote, error)
	GetVolumeRanking(ctx context.Context, market entity.Market) ([]entity.Quote, error)
	GetMarketHolidays(ctx context.Context, market entity.Market, from, to time.Time) ([]time.Time, error)
	GetOverseasNews(ctx context.Context, symbol, exchange string) ([]entity.NewsItem, error)
}

// QuotesHandler handles market data HTTP requests.
type QuotesHandler struct {
	uc QuotesUsecase
}

func NewQuotesHandler(uc QuotesUsecase) *QuotesHandler {
	return &QuotesHandler{uc: uc}
}

// GetPrice handles GET /api/stocks/:code/price?market=&exchange=.
func (h *QuotesHandler) GetPrice(c *gin.Context) {
	code := c.Param("code")
	market := entity.Market(c.DefaultQuery("market", string(entity.MarketDomestic)))
	exchange := c.Query("exchange")

	quote, err := h.uc.GetPrice(c.Request.Context(), market, code, exchange)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteItem(quote))
}

// GetFluctuationRanking handles GET /api/stocks/rankings/fluctuation?market=&direction=.
func (h *QuotesHandler) GetFluctuationRanking(c *gin.Context) {
	market := entity.Market(c.DefaultQuery("market", string(entity.MarketDomestic)))
	direction := entity.Direction(c.Query("direction"))

	quotes, err := h.uc.GetFluctuationRanking(c.Request.Context(), market, direction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRankingResponse(quotes))
}

// GetVolumeRanking handles GET /api/stocks/rankings/volume?market=.
func (h *QuotesHandler) GetVolumeRanking(c *gin.Context) {
	market := entity.Market(c.DefaultQuery("market", string(entity.MarketDomestic)))

	quotes, err := h.uc.GetVolumeRanking(c.Request.Context(), market)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRankingResponse(quotes))
}

// GetMarketHolidays handles GET /api/markets/holidays?market=&from=&to=.
func (h *QuotesHandler) GetMarketHolidays(c *gin.Context) {
	market := entity.Market(c.DefaultQuery("market", string(entity.MarketDomestic)))
	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a YYYY-MM-DD date"})
		return
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a YYYY-MM-DD date"})
		return
	}

	holidays, err := h.uc.GetMarketHolidays(c.Request.Context(), market, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]string, 0, len(holidays))
	for _, d := range holidays {
		out = append(out, d.Format(dateLayout))
	}
	c.JSON(http.StatusOK, dto.HolidaysResponse{Data: out})
}

// GetNews handles GET /api/stocks/:code/news?exchange=.
func (h *QuotesHandler) GetNews(c *gin.Context) {
	code := c.Param("code")
	exchange := c.Query("exchange")

	items, err := h.uc.GetOverseasNews(c.Request.Context(), code, exchange)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.NewsItemResponse, 0, len(items))
	for _, n := range items {
		out = append(out, dto.NewsItemResponse{
			Symbol:      n.Symbol,
			Title:       n.Title,
			Source:      n.Source,
			PublishedAt: n.PublishedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, dto.NewsResponse{Data: out})
}

// respondError maps domain errors to HTTP statuses: caller mistakes are 400,
// upstream market data failures are 502.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidSymbol),
		errors.Is(err, usecase.ErrInvalidExchange),
		errors.Is(err, usecase.ErrUnknownMarket),
		errors.Is(err, usecase.ErrInvalidDirection),
		errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrUnsupportedMarket):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrMarketDataUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func toQuoteItem(q entity.Quote) dto.QuoteItem {
	return dto.QuoteItem{
		Symbol:     q.Symbol,
		Name:       q.Name,
		Price:      q.Price.String(),
		Currency:   q.Currency,
		ChangeRate: q.ChangeRate.String(),
		Volume:     q.Volume,
		AsOf:       q.AsOf.UTC().Format(time.RFC3339),
	}
}

func toRankingResponse(quotes []entity.Quote) dto.RankingResponse {
	out := make([]dto.QuoteItem, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toQuoteItem(q))
	}
	return dto.RankingResponse{Data: out}
}
