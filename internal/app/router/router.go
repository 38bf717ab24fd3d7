// Package router assembles the HTTP route table.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portfoliohandler "invest_backend/internal/feature/portfolio/transport/handler"
	quoteshandler "invest_backend/internal/feature/quotes/transport/handler"
	searchhandler "invest_backend/internal/feature/search/transport/handler"
)

func NewRouter(search *searchhandler.SearchHandler, dashboard *portfoliohandler.DashboardHandler,
	quotes *quoteshandler.QuotesHandler) *gin.Engine {
	r := gin.Default()

	// liveness probe
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/stocks/search", search.Search)
		api.GET("/stocks/rankings/fluctuation", quotes.GetFluctuationRanking)
		api.GET("/stocks/rankings/volume", quotes.GetVolumeRanking)
		api.GET("/stocks/:code/price", quotes.GetPrice)
		api.GET("/stocks/:code/news", quotes.GetNews)
		api.GET("/markets/holidays", quotes.GetMarketHolidays)
		api.GET("/dashboard/summary", dashboard.Summary)
	}

	return r
}
