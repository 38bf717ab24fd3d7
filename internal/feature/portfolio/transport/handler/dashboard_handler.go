// Package handler provides the HTTP handlers for the dashboard.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	fxdomain "invest_backend/internal/feature/fx/domain"
	fxentity "invest_backend/internal/feature/fx/domain/entity"
	"invest_backend/internal/feature/portfolio/domain"
	"invest_backend/internal/feature/portfolio/domain/entity"
	"invest_backend/internal/feature/portfolio/transport/http/dto"
)

// DashboardUsecase is the usecase surface this handler consumes.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type DashboardUsecase interface {
	GetSummary(ctx context.Context, householdID uint) (entity.PortfolioSummary, fxentity.ExchangeRate, error)
}

// DashboardHandler handles the portfolio dashboard HTTP requests.
type DashboardHandler struct {
	uc DashboardUsecase
}

func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary handles GET /api/dashboard/summary?household_id=.
// Authorization for the household is enforced upstream of this handler.
func (h *DashboardHandler) Summary(c *gin.Context) {
	householdID, err := strconv.ParseUint(c.Query("household_id"), 10, 32)
	if err != nil || householdID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "household_id must be a positive integer"})
		return
	}

	summary, rate, err := h.uc.GetSummary(c.Request.Context(), uint(householdID))
	if err != nil {
		var staleErr *domain.StaleRateError
		if errors.As(err, &staleErr) || errors.Is(err, fxdomain.ErrRateUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toSummaryResponse(summary, rate))
}

func toSummaryResponse(s entity.PortfolioSummary, rate fxentity.ExchangeRate) dto.SummaryResponse {
	out := dto.SummaryResponse{
		TotalInvested:     s.TotalInvested.String(),
		TotalValue:        s.TotalValue.String(),
		TotalReturn:       s.TotalReturn.String(),
		ReturnRate:        s.ReturnRate.String(),
		ByMember:          toBucketItems(s.ByMember),
		ByAssetClass:      toBucketItems(s.ByAssetClass),
		ByRiskLevel:       toBucketItems(s.ByRiskLevel),
		MissingPriceCount: s.MissingPriceCount,
	}
	if rate.From != "" {
		out.ExchangeRate = &dto.ExchangeRateItem{
			From: rate.From,
			To:   rate.To,
			Rate: rate.Rate.String(),
			AsOf: rate.AsOf.UTC().Format(time.RFC3339),
		}
	}
	return out
}

func toBucketItems(buckets []entity.Bucket) []dto.BucketItem {
	out := make([]dto.BucketItem, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.BucketItem{
			Label:      b.Label,
			Value:      b.Value.String(),
			Percentage: b.Percentage.String(),
		})
	}
	return out
}
