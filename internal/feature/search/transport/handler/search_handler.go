// Package handler provides the HTTP handlers for securities search.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invest_backend/internal/feature/search/domain/entity"
	"invest_backend/internal/feature/search/transport/http/dto"
	"invest_backend/internal/feature/search/usecase"
)

// SearchUsecase is the usecase surface this handler consumes.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SearchUsecase interface {
	Search(ctx context.Context, query, market string, limit int) ([]entity.SearchCandidate, error)
}

// SearchHandler handles search-as-you-type HTTP requests.
type SearchHandler struct {
	uc SearchUsecase
}

func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search handles GET /api/stocks/search?q=&market=&limit=.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	market := c.Query("market")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	candidates, err := h.uc.Search(c.Request.Context(), query, market, limit)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidLimit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.SearchItem, 0, len(candidates))
	for _, x := range candidates {
		out = append(out, dto.SearchItem{
			Code:     x.Code,
			Name:     x.Name,
			Market:   x.Market,
			Exchange: x.Exchange,
		})
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Data: out})
}
