// Package kis provides a client for the Korea Investment & Securities
// quotation API.
package kis

import (
	"os"
	"strconv"
	"time"
)

// DefaultMaxSymbolsPerCall is the documented symbol cap of the domestic
// multi-price endpoint. Batches beyond it are split into sequential calls.
const DefaultMaxSymbolsPerCall = 30

// DefaultCallsPerSecond is the per-app call budget KIS enforces.
const DefaultCallsPerSecond = 20

// Config holds configuration for the KIS quotation client.
type Config struct {
	AppKey            string        // app key issued by the KIS developer portal
	AppSecret         string        // app secret paired with the app key
	BaseURL           string        // e.g. "https://openapi.koreainvestment.com:9443"
	Timeout           time.Duration // HTTP request timeout
	MaxSymbolsPerCall int           // multi-price batch cap
	CallsPerSecond    int           // client-side pacing of outbound calls
}

// LoadConfig loads KIS quotation configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		AppKey:            os.Getenv("KIS_APP_KEY"),
		AppSecret:         os.Getenv("KIS_APP_SECRET"),
		BaseURL:           os.Getenv("KIS_BASE_URL"),
		Timeout:           10 * time.Second,
		MaxSymbolsPerCall: DefaultMaxSymbolsPerCall,
		CallsPerSecond:    DefaultCallsPerSecond,
	}
	if v, err := strconv.Atoi(os.Getenv("KIS_MAX_SYMBOLS_PER_CALL")); err == nil && v > 0 {
		cfg.MaxSymbolsPerCall = v
	}
	return cfg
}
