// Package cache provides a Redis read-through cache for keyword stat
// aggregates. Per-keyword aggregation is the hottest query in the
// recommendation path and its inputs only change on daily ingestion.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/models"
	"github.com/twinssn/blogdex/internal/recommend"
)

const (
	connectionTimeout = 2 * time.Second

	// DefaultAggregateTTL covers the gap between daily stat ingestions.
	DefaultAggregateTTL = 6 * time.Hour

	aggregateKeyPrefix = "blogdex:agg:"
)

// NewClient creates a new Redis client with connection testing
func NewClient(addr, password string) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", pingErr)
	}

	return redisClient, nil
}

// StatAggregator caches per-keyword site aggregates in front of a slower
// source. A nil client disables caching and delegates every call.
type StatAggregator struct {
	source recommend.StatAggregator
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewStatAggregator wraps source with a Redis cache. client may be nil.
func NewStatAggregator(source recommend.StatAggregator, client *redis.Client, ttl time.Duration, log logger.Logger) *StatAggregator {
	if ttl <= 0 {
		ttl = DefaultAggregateTTL
	}
	return &StatAggregator{source: source, client: client, ttl: ttl, logger: log}
}

// AggregateKeywordStats serves the per-keyword aggregate from Redis when
// fresh, falling back to the source on miss or cache failure. Cache errors
// degrade to the source; they never fail the request.
func (a *StatAggregator) AggregateKeywordStats(ctx context.Context, kw string) ([]models.SiteKeywordAggregate, error) {
	if a.client == nil {
		return a.source.AggregateKeywordStats(ctx, kw)
	}

	key := aggregateKeyPrefix + kw

	cached, err := a.client.Get(ctx, key).Bytes()
	if err == nil {
		var aggs []models.SiteKeywordAggregate
		if unmarshalErr := json.Unmarshal(cached, &aggs); unmarshalErr == nil {
			return aggs, nil
		}
		// Corrupt entry, fall through and rewrite it.
	} else if !errors.Is(err, redis.Nil) {
		a.logger.Warn("cache read failed", logger.String("key", key), logger.Error(err))
	}

	aggs, err := a.source.AggregateKeywordStats(ctx, kw)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(aggs)
	if err != nil {
		return aggs, nil
	}
	if setErr := a.client.Set(ctx, key, payload, a.ttl).Err(); setErr != nil {
		a.logger.Warn("cache write failed", logger.String("key", key), logger.Error(setErr))
	}

	return aggs, nil
}

// Invalidate drops all cached aggregates. Called after stat ingestion so the
// next recommendation sees fresh numbers.
func (a *StatAggregator) Invalidate(ctx context.Context) error {
	if a.client == nil {
		return nil
	}

	iter := a.client.Scan(ctx, 0, aggregateKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) > 0 {
		if err := a.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cache: %w", err)
		}
	}

	return nil
}
