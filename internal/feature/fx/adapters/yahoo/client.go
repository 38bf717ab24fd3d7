// Package yahoo provides an exchange-rate source backed by the Yahoo Finance
// chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"invest_backend/internal/feature/fx/domain/entity"
)

// browser-like User-Agent to avoid bot detection on the public endpoint.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL string        // e.g. "https://query1.finance.yahoo.com"
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("YAHOO_BASE_URL")
	if base == "" {
		base = "https://query1.finance.yahoo.com"
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}

// chartResponse represents the Yahoo Finance chart API response.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Client fetches exchange rates from the Yahoo Finance chart endpoint.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a new Client with the given config and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Fetch retrieves the current rate for one currency pair, e.g. USD→KRW via
// the "USDKRW=X" chart symbol.
func (c *Client) Fetch(ctx context.Context, from, to string) (entity.ExchangeRate, error) {
	symbol := from + to + "=X"
	u := fmt.Sprintf("%s/v8/finance/chart/%s", c.cfg.BaseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.ExchangeRate{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return entity.ExchangeRate{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.ExchangeRate{}, fmt.Errorf("yahoo http %d", res.StatusCode)
	}

	var body chartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.ExchangeRate{}, fmt.Errorf("decode yahoo response: %w", err)
	}
	if body.Chart.Error != nil {
		return entity.ExchangeRate{}, fmt.Errorf("yahoo api error: %s - %s",
			body.Chart.Error.Code, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return entity.ExchangeRate{}, fmt.Errorf("yahoo: empty result for %s", symbol)
	}

	meta := body.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return entity.ExchangeRate{}, fmt.Errorf("yahoo: missing market price for %s", symbol)
	}

	asOf := time.Now()
	if meta.RegularMarketTime > 0 {
		asOf = time.Unix(meta.RegularMarketTime, 0)
	}
	return entity.ExchangeRate{
		From: from,
		To:   to,
		Rate: decimal.NewFromFloat(meta.RegularMarketPrice),
		AsOf: asOf,
	}, nil
}
