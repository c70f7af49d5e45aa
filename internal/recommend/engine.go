// Package recommend decides whether a candidate title duplicates existing
// content and which blog is the statistically best home for it.
package recommend

import (
	"context"

	"github.com/twinssn/blogdex/internal/keyword"
	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/models"
)

// Terminal result reasons surfaced to the operator UI. These are contract
// strings; the dashboard matches on them.
const (
	ReasonKeywordExtractionFailed = "keyword extraction failed"
	ReasonNoPerformanceData       = "no matching performance data"
)

// PostSearcher finds published posts whose title or keyword text contains
// the given keyword as a substring.
type PostSearcher interface {
	SearchPostsByKeyword(ctx context.Context, kw string, limit int) ([]models.Post, error)
}

// StatAggregator rolls up search-console stats per site for queries
// containing the given keyword.
type StatAggregator interface {
	AggregateKeywordStats(ctx context.Context, kw string) ([]models.SiteKeywordAggregate, error)
}

// BlogLister lists the registered blog properties.
type BlogLister interface {
	ListBlogs(ctx context.Context) ([]models.Blog, error)
}

// Config holds the engine's tuning constants. The caps are deliberate cost
// controls on query fan-out, not correctness thresholds.
type Config struct {
	// MinOverlap is the distinct-keyword threshold below which a corpus
	// item is not considered related. Suppresses single common-word
	// false positives.
	MinOverlap int

	// PerKeywordCandidates caps each per-keyword corpus lookup.
	PerKeywordCandidates int

	// MaxMatches caps the ranked match list returned by a duplicate check.
	MaxMatches int

	// ImpressionWeight and ClickWeight convert search performance into a
	// raw score. Clicks carry stronger buying intent per unit.
	ImpressionWeight int64
	ClickWeight      int64

	// DuplicatePenalty is subtracted per already-published matching post,
	// discouraging blogs that have covered the same ground.
	DuplicatePenalty int64

	// MaxReasons caps the human-readable reason strings per
	// recommendation.
	MaxReasons int

	// TopBlogs caps the transparency ranking attached to a
	// recommendation.
	TopBlogs int
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		MinOverlap:           2,
		PerKeywordCandidates: 20,
		MaxMatches:           5,
		ImpressionWeight:     2,
		ClickWeight:          10,
		DuplicatePenalty:     5,
		MaxReasons:           5,
		TopBlogs:             3,
	}
}

// Engine runs duplicate checks and blog recommendations over the stores.
// It holds no mutable state; every call reads the supplied corpora fresh.
type Engine struct {
	posts      PostSearcher
	stats      StatAggregator
	blogs      BlogLister
	classifier *keyword.Classifier
	cfg        Config
	logger     logger.Logger
}

// NewEngine creates a recommendation engine.
func NewEngine(posts PostSearcher, stats StatAggregator, blogs BlogLister, cfg Config, log logger.Logger) *Engine {
	if cfg.MinOverlap <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{
		posts:      posts,
		stats:      stats,
		blogs:      blogs,
		classifier: keyword.NewClassifier(),
		cfg:        cfg,
		logger:     log,
	}
}

// Config returns the engine's tuning constants.
func (e *Engine) Config() Config { return e.cfg }

// Classify returns the commercial value class of a query.
func (e *Engine) Classify(query string) keyword.Value {
	return e.classifier.Classify(query)
}

// Classifier returns the engine's shared keyword classifier.
func (e *Engine) Classifier() *keyword.Classifier { return e.classifier }
