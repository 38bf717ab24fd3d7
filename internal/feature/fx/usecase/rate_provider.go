// Package usecase implements exchange-rate business logic.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"invest_backend/internal/feature/fx/domain"
	"invest_backend/internal/feature/fx/domain/entity"
	"invest_backend/internal/platform/retry"
)

// DefaultFreshWindow is how long a fetched rate is served without refetching.
const DefaultFreshWindow = time.Hour

// RateSource fetches a current rate for one currency pair from an upstream
// provider.
type RateSource interface {
	Fetch(ctx context.Context, from, to string) (entity.ExchangeRate, error)
}

// RateProvider serves exchange rates from an in-memory cache, refreshing each
// pair from the upstream source when its cached value goes stale. Concurrent
// refreshes of the same pair are collapsed into a single upstream call.
type RateProvider struct {
	source RateSource
	window time.Duration
	policy retry.Policy

	mu    sync.RWMutex
	rates map[string]entity.ExchangeRate

	group singleflight.Group
}

// NewRateProvider creates a RateProvider. A zero window falls back to
// DefaultFreshWindow.
func NewRateProvider(source RateSource, window time.Duration, policy retry.Policy) *RateProvider {
	if window <= 0 {
		window = DefaultFreshWindow
	}
	return &RateProvider{
		source: source,
		window: window,
		policy: policy,
		rates:  make(map[string]entity.ExchangeRate),
	}
}

// GetRate returns the exchange rate from one currency to another. A fresh
// cached rate is returned without an upstream call. When the upstream fetch
// fails and a stale cached rate exists, the stale rate is returned so callers
// can degrade instead of failing outright.
func (p *RateProvider) GetRate(ctx context.Context, from, to string) (entity.ExchangeRate, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if !validCurrency(from) || !validCurrency(to) {
		return entity.ExchangeRate{}, domain.ErrInvalidCurrency
	}
	if from == to {
		return entity.ExchangeRate{From: from, To: to, Rate: decimal.NewFromInt(1), AsOf: time.Now()}, nil
	}

	key := from + "/" + to

	p.mu.RLock()
	cached, ok := p.rates[key]
	p.mu.RUnlock()
	if ok && cached.Fresh(time.Now(), p.window) {
		return cached, nil
	}

	v, err, _ := p.group.Do(key, func() (any, error) {
		return p.refresh(ctx, key, from, to)
	})
	if err != nil {
		// Serve the stale rate if we have one; the AsOf timestamp lets
		// callers decide whether that is acceptable.
		if ok {
			slog.Warn("serving stale exchange rate after refresh failure",
				"pair", key, "as_of", cached.AsOf, "error", err)
			return cached, nil
		}
		return entity.ExchangeRate{}, fmt.Errorf("%w: %s: %v", domain.ErrRateUnavailable, key, err)
	}
	return v.(entity.ExchangeRate), nil
}

func (p *RateProvider) refresh(ctx context.Context, key, from, to string) (entity.ExchangeRate, error) {
	// Survive cancellation of the first caller; others may be waiting on
	// the same flight.
	ctx = context.WithoutCancel(ctx)

	// Another goroutine may have refreshed while we waited for the flight.
	p.mu.RLock()
	cached, ok := p.rates[key]
	p.mu.RUnlock()
	if ok && cached.Fresh(time.Now(), p.window) {
		return cached, nil
	}

	var rate entity.ExchangeRate
	err := p.policy.Do(ctx, func() error {
		var err error
		rate, err = p.source.Fetch(ctx, from, to)
		return err
	})
	if err != nil {
		return entity.ExchangeRate{}, err
	}
	if rate.Rate.IsZero() || rate.Rate.IsNegative() {
		return entity.ExchangeRate{}, fmt.Errorf("non-positive rate %s for %s", rate.Rate, key)
	}

	p.mu.Lock()
	p.rates[key] = rate
	p.mu.Unlock()
	return rate, nil
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
