package backend

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "report:"

// ReportCache is a best-effort Redis read-through cache for report
// payloads. Cache failures are logged and treated as misses; the client
// never fails a request because of the cache.
type ReportCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewReportCache creates a report cache with the given TTL.
func NewReportCache(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *ReportCache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ReportCache{client: client, ttl: ttl, logger: logger}
}

// Get loads a cached payload into out and reports whether it was found.
func (c *ReportCache) Get(ctx context.Context, key string, out any) bool {
	data, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("report cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("report cache entry unreadable", slog.String("key", key))
		return false
	}
	return true
}

// Put stores a payload under the cache TTL.
func (c *ReportCache) Put(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("report cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
