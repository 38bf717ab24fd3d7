// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"invest_backend/internal/feature/quotes/domain/entity"
	"invest_backend/internal/feature/quotes/usecase"
)

// CachingMarketRepository decorates a MarketDataRepository with Redis caching
// for the read-mostly endpoints (rankings, holidays, news). It implements the
// decorator pattern, transparently adding caching without modifying the
// underlying repository. Price lookups pass through uncached: a stale price
// on a money screen is worse than an extra upstream call.
type CachingMarketRepository struct {
	inner     usecase.MarketDataRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.MarketDataRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketDataRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "market".
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketDataRepository, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "market"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetDomesticPrice passes through uncached.
func (c *CachingMarketRepository) GetDomesticPrice(ctx context.Context, symbol string) (entity.Quote, error) {
	return c.inner.GetDomesticPrice(ctx, symbol)
}

// GetDomesticPrices passes through uncached.
func (c *CachingMarketRepository) GetDomesticPrices(ctx context.Context, symbols []string) (map[string]entity.Quote, error) {
	return c.inner.GetDomesticPrices(ctx, symbols)
}

// GetOverseasPrice passes through uncached.
func (c *CachingMarketRepository) GetOverseasPrice(ctx context.Context, symbol, exchange string) (entity.Quote, error) {
	return c.inner.GetOverseasPrice(ctx, symbol, exchange)
}

// GetFluctuationRanking retrieves the ranking, checking cache first.
func (c *CachingMarketRepository) GetFluctuationRanking(ctx context.Context, market entity.Market, direction entity.Direction) ([]entity.Quote, error) {
	key := c.cacheKey("fluctuation", string(market), string(direction))
	var out []entity.Quote
	if c.readCache(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.GetFluctuationRanking(ctx, market, direction)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, key, out, c.ttl)
	return out, nil
}

// GetVolumeRanking retrieves the ranking, checking cache first.
func (c *CachingMarketRepository) GetVolumeRanking(ctx context.Context, market entity.Market) ([]entity.Quote, error) {
	key := c.cacheKey("volume", string(market))
	var out []entity.Quote
	if c.readCache(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.GetVolumeRanking(ctx, market)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, key, out, c.ttl)
	return out, nil
}

// GetMarketHolidays retrieves the calendar, checking cache first. The
// calendar only changes once a day, so entries live until the next midnight
// in Seoul rather than the short ranking TTL.
func (c *CachingMarketRepository) GetMarketHolidays(ctx context.Context, market entity.Market, from, to time.Time) ([]time.Time, error) {
	key := c.cacheKey("holidays", string(market), from.Format("20060102"), to.Format("20060102"))
	var out []time.Time
	if c.readCache(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.GetMarketHolidays(ctx, market, from, to)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, key, out, TimeUntilNextMidnightKST())
	return out, nil
}

// GetOverseasNews retrieves headlines, checking cache first.
func (c *CachingMarketRepository) GetOverseasNews(ctx context.Context, symbol, exchange string) ([]entity.NewsItem, error) {
	key := c.cacheKey("news", safe(symbol), safe(exchange))
	var out []entity.NewsItem
	if c.readCache(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.GetOverseasNews(ctx, symbol, exchange)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, key, out, c.ttl)
	return out, nil
}

// readCache loads and unmarshals a cache entry. A corrupted entry is deleted
// and reported as a miss.
func (c *CachingMarketRepository) readCache(ctx context.Context, key string, out any) bool {
	if c.rdb == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// writeCache stores a cache entry (best effort).
func (c *CachingMarketRepository) writeCache(ctx context.Context, key string, v any, ttl time.Duration) {
	if c.rdb == nil {
		return
	}
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}
}

// cacheKey joins namespace and parts into a Redis key.
func (c *CachingMarketRepository) cacheKey(parts ...string) string {
	return c.namespace + ":" + strings.Join(parts, ":")
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
