package main

import (
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"invest_backend/internal/app/router"
	brokerageadapters "invest_backend/internal/feature/brokerage/adapters"
	kisauth "invest_backend/internal/feature/brokerage/adapters/kis"
	brokerageusecase "invest_backend/internal/feature/brokerage/usecase"
	"invest_backend/internal/feature/fx/adapters/yahoo"
	fxusecase "invest_backend/internal/feature/fx/usecase"
	portfolioadapters "invest_backend/internal/feature/portfolio/adapters"
	portfoliohandler "invest_backend/internal/feature/portfolio/transport/handler"
	portfoliousecase "invest_backend/internal/feature/portfolio/usecase"
	kisquotes "invest_backend/internal/feature/quotes/adapters/kis"
	quoteshandler "invest_backend/internal/feature/quotes/transport/handler"
	quotesusecase "invest_backend/internal/feature/quotes/usecase"
	searchadapters "invest_backend/internal/feature/search/adapters"
	searchhandler "invest_backend/internal/feature/search/transport/handler"
	searchusecase "invest_backend/internal/feature/search/usecase"
	"invest_backend/internal/platform/cache"
	infradb "invest_backend/internal/platform/db"
	platformhttp "invest_backend/internal/platform/http"
	infraredis "invest_backend/internal/platform/redis"
	"invest_backend/internal/platform/retry"
)

func main() {
	db := infradb.OpenDB()

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		slog.Warn("redis unavailable, running without cache", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	httpClient := platformhttp.NewHTTPClient(10 * time.Second)

	// brokerage auth
	authClient := kisauth.NewAuthClient(kisauth.LoadConfig(), httpClient)
	tokenRepo := brokerageadapters.NewTokenRepository(db)
	tokenManager := brokerageusecase.NewTokenManager(
		authClient, tokenRepo, brokerageusecase.DefaultExpiryMargin, retry.DefaultPolicy())

	// market data, with a Redis read-through cache in front
	kisClient := kisquotes.NewClient(kisquotes.LoadConfig(), httpClient, tokenManager, retry.DefaultPolicy())
	marketRepo := cache.NewCachingMarketRepository(rdb, time.Minute, kisClient, "market")
	quotesUC := quotesusecase.NewQuotesUsecase(marketRepo)

	// exchange rates
	yahooCfg := yahoo.LoadConfig()
	rateSource := yahoo.NewClient(yahooCfg, platformhttp.NewHTTPClient(yahooCfg.Timeout))
	rateProvider := fxusecase.NewRateProvider(rateSource, fxusecase.DefaultFreshWindow, retry.DefaultPolicy())

	// search
	securityRepo := searchadapters.NewSecurityMySQLRepository(db)
	searchUC := searchusecase.NewSearchUsecase(securityRepo)

	// dashboard
	holdingRepo := portfolioadapters.NewHoldingMySQLRepository(db)
	aggregator := portfoliousecase.NewAggregator("", 0)
	dashboardUC := portfoliousecase.NewDashboardUsecase(holdingRepo, marketRepo, rateProvider, aggregator)

	searchH := searchhandler.NewSearchHandler(searchUC)
	quotesH := quoteshandler.NewQuotesHandler(quotesUC)
	dashboardH := portfoliohandler.NewDashboardHandler(dashboardUC)

	r := router.NewRouter(searchH, dashboardH, quotesH)

	if err := r.Run(":8080"); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
