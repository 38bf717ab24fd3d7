// Package kis provides the Korea Investment & Securities open API auth client.
package kis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"invest_backend/internal/feature/brokerage/domain/entity"
	"invest_backend/internal/feature/brokerage/usecase"
)

// Config holds configuration for the KIS auth client.
type Config struct {
	AppKey    string        // app key issued by the KIS developer portal
	AppSecret string        // app secret paired with the app key
	BaseURL   string        // e.g. "https://openapi.koreainvestment.com:9443"
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads KIS auth configuration from environment variables.
func LoadConfig() Config {
	return Config{
		AppKey:    os.Getenv("KIS_APP_KEY"),
		AppSecret: os.Getenv("KIS_APP_SECRET"),
		BaseURL:   os.Getenv("KIS_BASE_URL"),
		Timeout:   10 * time.Second,
	}
}

// AuthClient requests access tokens from the KIS token issuance endpoint.
type AuthClient struct {
	cfg    Config
	client *http.Client
}

var _ usecase.TokenIssuer = (*AuthClient)(nil)

// NewAuthClient creates a new AuthClient with the given config and HTTP client.
func NewAuthClient(cfg Config, client *http.Client) *AuthClient {
	return &AuthClient{cfg: cfg, client: client}
}

// tokenRequest is the issuance request body. KIS only supports the
// client_credentials grant for app-level tokens.
type tokenRequest struct {
	GrantType string `json:"grant_type"`
	AppKey    string `json:"appkey"`
	AppSecret string `json:"appsecret"`
}

// tokenResponse is the issuance response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	ErrorCode   string `json:"error_code,omitempty"`
	ErrorDesc   string `json:"error_description,omitempty"`
}

// Issue requests a fresh access token.
func (a *AuthClient) Issue(ctx context.Context) (entity.AccessToken, error) {
	body, err := json.Marshal(tokenRequest{
		GrantType: "client_credentials",
		AppKey:    a.cfg.AppKey,
		AppSecret: a.cfg.AppSecret,
	})
	if err != nil {
		return entity.AccessToken{}, err
	}

	u := fmt.Sprintf("%s/oauth2/tokenP", a.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return entity.AccessToken{}, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	res, err := a.client.Do(req)
	if err != nil {
		return entity.AccessToken{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	var out tokenResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return entity.AccessToken{}, fmt.Errorf("decode token response: %w", err)
	}
	if res.StatusCode >= 400 {
		return entity.AccessToken{}, fmt.Errorf("kis token http %d: %s %s", res.StatusCode, out.ErrorCode, out.ErrorDesc)
	}
	if out.AccessToken == "" {
		return entity.AccessToken{}, fmt.Errorf("kis token response missing access_token")
	}

	now := time.Now()
	return entity.AccessToken{
		Value:     out.AccessToken,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Duration(out.ExpiresIn) * time.Second),
	}, nil
}
