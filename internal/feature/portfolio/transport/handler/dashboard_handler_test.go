package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fxdomain "invest_backend/internal/feature/fx/domain"
	fxentity "invest_backend/internal/feature/fx/domain/entity"
	"invest_backend/internal/feature/portfolio/domain"
	"invest_backend/internal/feature/portfolio/domain/entity"
)

type mockDashboardUsecase struct {
	GetSummaryFunc func(ctx context.Context, householdID uint) (entity.PortfolioSummary, fxentity.ExchangeRate, error)
}

func (m *mockDashboardUsecase) GetSummary(ctx context.Context, householdID uint) (entity.PortfolioSummary, fxentity.ExchangeRate, error) {
	return m.GetSummaryFunc(ctx, householdID)
}

func serve(t *testing.T, uc DashboardUsecase, url string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/api/dashboard/summary", NewDashboardHandler(uc).Summary)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestDashboardHandler_Summary(t *testing.T) {
	asOf := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	uc := &mockDashboardUsecase{GetSummaryFunc: func(ctx context.Context, householdID uint) (entity.PortfolioSummary, fxentity.ExchangeRate, error) {
		assert.Equal(t, uint(7), householdID)
		return entity.PortfolioSummary{
				TotalInvested: decimal.RequireFromString("10000"),
				TotalValue:    decimal.RequireFromString("12000"),
				TotalReturn:   decimal.RequireFromString("2000"),
				ReturnRate:    decimal.RequireFromString("0.2"),
				ByMember: []entity.Bucket{
					{Label: "엄마", Value: decimal.RequireFromString("12000"), Percentage: decimal.RequireFromString("100")},
				},
				ByAssetClass: []entity.Bucket{
					{Label: "equity", Value: decimal.RequireFromString("12000"), Percentage: decimal.RequireFromString("100")},
				},
				ByRiskLevel: []entity.Bucket{
					{Label: "medium", Value: decimal.RequireFromString("12000"), Percentage: decimal.RequireFromString("100")},
				},
				MissingPriceCount: 1,
			},
			fxentity.ExchangeRate{From: "USD", To: "KRW", Rate: decimal.RequireFromString("1400"), AsOf: asOf},
			nil
	}}

	w := serve(t, uc, "/api/dashboard/summary?household_id=7")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"totalInvested": "10000",
		"totalValue": "12000",
		"totalReturn": "2000",
		"returnRate": "0.2",
		"byMember": [{"label":"엄마","value":"12000","percentage":"100"}],
		"byAssetClass": [{"label":"equity","value":"12000","percentage":"100"}],
		"byRiskLevel": [{"label":"medium","value":"12000","percentage":"100"}],
		"missingPriceCount": 1,
		"exchangeRate": {"from":"USD","to":"KRW","rate":"1400","asOf":"2026-02-10T09:00:00Z"}
	}`, w.Body.String())
}

func TestDashboardHandler_Summary_NoRateOmitted(t *testing.T) {
	uc := &mockDashboardUsecase{GetSummaryFunc: func(ctx context.Context, householdID uint) (entity.PortfolioSummary, fxentity.ExchangeRate, error) {
		return entity.PortfolioSummary{}, fxentity.ExchangeRate{}, nil
	}}

	w := serve(t, uc, "/api/dashboard/summary?household_id=1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "exchangeRate")
}

func TestDashboardHandler_Summary_InvalidHouseholdID(t *testing.T) {
	uc := &mockDashboardUsecase{GetSummaryFunc: func(ctx context.Context, householdID uint) (entity.PortfolioSummary, fxentity.ExchangeRate, error) {
		t.Fatal("usecase should not be called")
		return entity.PortfolioSummary{}, fxentity.ExchangeRate{}, nil
	}}

	for _, url := range []string{
		"/api/dashboard/summary",
		"/api/dashboard/summary?household_id=abc",
		"/api/dashboard/summary?household_id=0",
	} {
		w := serve(t, uc, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}

func TestDashboardHandler_Summary_StaleRate(t *testing.T) {
	uc := &mockDashboardUsecase{GetSummaryFunc: func(ctx context.Context, householdID uint) (entity.PortfolioSummary, fxentity.ExchangeRate, error) {
		return entity.PortfolioSummary{}, fxentity.ExchangeRate{}, &domain.StaleRateError{Pair: "USD/KRW", AsOf: time.Now().Add(-3 * time.Hour), Window: time.Hour}
	}}

	w := serve(t, uc, "/api/dashboard/summary?household_id=1")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "USD/KRW")
}

func TestDashboardHandler_Summary_RateUnavailable(t *testing.T) {
	uc := &mockDashboardUsecase{GetSummaryFunc: func(ctx context.Context, householdID uint) (entity.PortfolioSummary, fxentity.ExchangeRate, error) {
		return entity.PortfolioSummary{}, fxentity.ExchangeRate{}, fxdomain.ErrRateUnavailable
	}}

	w := serve(t, uc, "/api/dashboard/summary?household_id=1")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestDashboardHandler_Summary_InternalError(t *testing.T) {
	uc := &mockDashboardUsecase{GetSummaryFunc: func(ctx context.Context, householdID uint) (entity.PortfolioSummary, fxentity.ExchangeRate, error) {
		return entity.PortfolioSummary{}, fxentity.ExchangeRate{}, errors.New("db down")
	}}

	w := serve(t, uc, "/api/dashboard/summary?household_id=1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
