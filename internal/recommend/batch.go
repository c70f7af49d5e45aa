package recommend

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/twinssn/blogdex/internal/logger"
)

const (
	batchChunkSize = 20
	batchRateLimit = rate.Limit(50) // recommendations per second
	batchRateBurst = batchChunkSize
)

// RecommendBatch scores every title sequentially in chunks. The rate limiter
// keeps a large batch from starving interactive requests for database time.
// Any failure aborts the whole batch; partial results are not returned.
func (e *Engine) RecommendBatch(ctx context.Context, titles []string) ([]Recommendation, error) {
	limiter := rate.NewLimiter(batchRateLimit, batchRateBurst)
	out := make([]Recommendation, 0, len(titles))

	for start := 0; start < len(titles); start += batchChunkSize {
		end := start + batchChunkSize
		if end > len(titles) {
			end = len(titles)
		}

		for _, title := range titles[start:end] {
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("batch rate limit: %w", err)
			}
			rec, err := e.Recommend(ctx, title)
			if err != nil {
				return nil, fmt.Errorf("recommend %q: %w", title, err)
			}
			out = append(out, rec)
		}

		e.logger.Debug("batch chunk scored",
			logger.Int("done", end),
			logger.Int("total", len(titles)))
	}

	return out, nil
}
