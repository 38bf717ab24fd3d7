package kis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	brokeragedomain "invest_backend/internal/feature/brokerage/domain"
	brokerageentity "invest_backend/internal/feature/brokerage/domain/entity"
	"invest_backend/internal/feature/quotes/domain"
	"invest_backend/internal/platform/retry"
)

// TokenSource supplies valid access tokens and accepts invalidation after the
// brokerage rejects one. Following Go convention: interfaces are defined by
// the consumer (this client), not the provider (brokerage usecase).
type TokenSource interface {
	GetValidToken(ctx context.Context) (brokerageentity.AccessToken, error)
	Invalidate(value string)
}

// Client calls the KIS quotation endpoints. Every call attaches the bearer
// token from the TokenSource plus the app key/secret pair, is paced by a
// client-side rate limiter, and retries transient failures per the injected
// retry policy.
type Client struct {
	cfg     Config
	client  *http.Client
	tokens  TokenSource
	policy  retry.Policy
	limiter *rate.Limiter
}

// NewClient creates a new KIS quotation client.
func NewClient(cfg Config, httpClient *http.Client, tokens TokenSource, policy retry.Policy) *Client {
	cps := cfg.CallsPerSecond
	if cps <= 0 {
		cps = DefaultCallsPerSecond
	}
	return &Client{
		cfg:     cfg,
		client:  httpClient,
		tokens:  tokens,
		policy:  policy,
		limiter: rate.NewLimiter(rate.Limit(cps), cps),
	}
}

// errUnauthorized marks a 401-equivalent rejection inside one attempt.
var errUnauthorized = errors.New("unauthorized")

// envelope is satisfied by every dto response via the embedded Header.
type envelope interface {
	OK() bool
	Message() (code, msg string)
}

// getJSON performs one logical endpoint call: token attach, pacing, the
// 401-refresh-once rule, and transient-failure retries with backoff.
func (c *Client) getJSON(ctx context.Context, path, trID string, query url.Values, out envelope) error {
	return c.policy.Do(ctx, func() error {
		return c.attempt(ctx, path, trID, query, out)
	})
}

// attempt is one unit of the retry budget. A 401 response forces exactly one
// token refresh and retries the single call once; a second 401 is surfaced as
// permanent so a systemic auth failure is not masked by endless refreshing.
func (c *Client) attempt(ctx context.Context, path, trID string, query url.Values, out envelope) error {
	tok, err := c.tokens.GetValidToken(ctx)
	if err != nil {
		// Token issuance failed after its own retry policy; retrying the
		// quote call cannot help.
		return retry.Permanent(err)
	}

	err = c.doOnce(ctx, tok.Value, path, trID, query, out)
	if !errors.Is(err, errUnauthorized) {
		return err
	}

	c.tokens.Invalidate(tok.Value)
	fresh, err := c.tokens.GetValidToken(ctx)
	if err != nil {
		return retry.Permanent(err)
	}

	err = c.doOnce(ctx, fresh.Value, path, trID, query, out)
	if errors.Is(err, errUnauthorized) {
		return retry.Permanent(fmt.Errorf("kis %s: still unauthorized after token refresh", path))
	}
	return err
}

// doOnce executes a single HTTP round trip and decodes the response.
// Returned errors are retryable unless wrapped with retry.Permanent.
func (c *Client) doOnce(ctx context.Context, token, path, trID string, query url.Values, out envelope) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return retry.Permanent(err)
	}

	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return retry.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("authorization", "Bearer "+token)
	req.Header.Set("appkey", c.cfg.AppKey)
	req.Header.Set("appsecret", c.cfg.AppSecret)
	req.Header.Set("tr_id", trID)
	req.Header.Set("custtype", "P")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return errUnauthorized
	case res.StatusCode >= 500:
		return fmt.Errorf("kis http %d", res.StatusCode)
	case res.StatusCode >= 400:
		return retry.Permanent(fmt.Errorf("kis http %d", res.StatusCode))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		// Malformed payloads are treated like any other transient upstream
		// fault and go back through the retry budget.
		return fmt.Errorf("decode kis response: %w", err)
	}
	if !out.OK() {
		code, msg := out.Message()
		return retry.Permanent(fmt.Errorf("kis api error: code=%s msg=%s", code, msg))
	}
	return nil
}

// wrapErr converts a failed endpoint call into the typed error callers branch
// on. Auth failures pass through unchanged so they keep their own type.
func (c *Client) wrapErr(symbol, endpoint string, err error) error {
	var authErr *brokeragedomain.AuthError
	if errors.As(err, &authErr) {
		return err
	}
	attempts := c.policy.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &domain.MarketDataError{Symbol: symbol, Endpoint: endpoint, Attempts: attempts, Err: err}
}

// parseDecimal converts a KIS numeric string, tolerating the empty string.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
