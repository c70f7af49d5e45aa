package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twinssn/blogdex/internal/cache"
	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/models"
)

type countingSource struct {
	calls int
	aggs  []models.SiteKeywordAggregate
}

func (s *countingSource) AggregateKeywordStats(_ context.Context, _ string) ([]models.SiteKeywordAggregate, error) {
	s.calls++
	return s.aggs, nil
}

func newTestCache(t *testing.T, source *countingSource) *cache.StatAggregator {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return cache.NewStatAggregator(source, client, 0, logger.NewNopLogger())
}

func TestStatAggregatorReadThrough(t *testing.T) {
	source := &countingSource{
		aggs: []models.SiteKeywordAggregate{
			{Site: "techsuni.example.com", Clicks: 5, Impressions: 100},
		},
	}
	agg := newTestCache(t, source)
	ctx := context.Background()

	first, err := agg.AggregateKeywordStats(ctx, "보조금")
	require.NoError(t, err)
	second, err := agg.AggregateKeywordStats(ctx, "보조금")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls, "second read should come from cache")
}

func TestStatAggregatorKeysAreIndependent(t *testing.T) {
	source := &countingSource{}
	agg := newTestCache(t, source)
	ctx := context.Background()

	_, err := agg.AggregateKeywordStats(ctx, "보조금")
	require.NoError(t, err)
	_, err = agg.AggregateKeywordStats(ctx, "전기차")
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
}

func TestStatAggregatorInvalidate(t *testing.T) {
	source := &countingSource{}
	agg := newTestCache(t, source)
	ctx := context.Background()

	_, err := agg.AggregateKeywordStats(ctx, "보조금")
	require.NoError(t, err)
	require.NoError(t, agg.Invalidate(ctx))

	_, err = agg.AggregateKeywordStats(ctx, "보조금")
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls, "invalidation should force a source read")
}

func TestStatAggregatorNilClientDelegates(t *testing.T) {
	source := &countingSource{}
	agg := cache.NewStatAggregator(source, nil, 0, logger.NewNopLogger())

	_, err := agg.AggregateKeywordStats(context.Background(), "보조금")
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
}
