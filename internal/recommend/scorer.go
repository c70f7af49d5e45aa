package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/twinssn/blogdex/internal/keyword"
	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/models"
)

// BlogScore is one blog's standing for a candidate title.
type BlogScore struct {
	BlogID      int64  `json:"blog_id"`
	BlogName    string `json:"blog_name"`
	BlogURL     string `json:"blog_url"`
	Score       int64  `json:"score"`
	Impressions int64  `json:"impressions"`
	Clicks      int64  `json:"clicks"`
	DupCount    int64  `json:"dup_count"`
}

// Recommendation is the scored publishing advice for one candidate title.
// Recommendation is nil when no keywords survive tokenization or no blog has
// related performance data; Reason says which.
type Recommendation struct {
	Title          string        `json:"title"`
	Keywords       []string      `json:"keywords"`
	Value          keyword.Value `json:"value"`
	Recommendation *string       `json:"recommendation"`
	BlogURL        string        `json:"blog_url,omitempty"`
	Score          int64         `json:"score"`
	Impressions    int64         `json:"impressions"`
	Clicks         int64         `json:"clicks"`
	DupCount       int64         `json:"dup_count"`
	Reason         string        `json:"reason,omitempty"`
	Reasons        []string      `json:"reasons"`
	AllBlogs       []BlogScore   `json:"all_blogs"`
}

// blogTally accumulates one blog's raw contributions during scoring.
type blogTally struct {
	score       BlogScore
	contributed bool
}

// Recommend scores every registered blog for the title and returns the
// ranked advice. The score is historical search demand for the title's
// keywords minus a prior-coverage penalty:
//
//	raw     = Σ impressions*ImpressionWeight + clicks*ClickWeight
//	penalty = Σ matching prior posts * DuplicatePenalty
//	final   = raw - penalty
//
// final may go negative; ranking still places the least-negative blog
// first. Ties break by blog id ascending.
func (e *Engine) Recommend(ctx context.Context, title string) (Recommendation, error) {
	tokens := keyword.Tokenize(title)
	rec := Recommendation{
		Title:    title,
		Keywords: tokens,
		Value:    e.classifier.Classify(title),
		Reasons:  []string{},
		AllBlogs: []BlogScore{},
	}

	if len(tokens) == 0 {
		rec.Reason = ReasonKeywordExtractionFailed
		return rec, nil
	}

	blogs, err := e.blogs.ListBlogs(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("list blogs: %w", err)
	}
	if len(blogs) == 0 {
		rec.Reason = ReasonNoPerformanceData
		return rec, nil
	}

	tallies := make([]*blogTally, 0, len(blogs))
	for _, b := range blogs {
		tallies = append(tallies, &blogTally{
			score: BlogScore{BlogID: b.ID, BlogName: b.Name, BlogURL: b.URL},
		})
	}

	// Each keyword incurs its own stat aggregation and post lookup. The
	// fan-out is bounded by the token cap and the per-keyword candidate
	// cap.
	for _, kw := range tokens {
		if err := e.scoreKeyword(ctx, kw, blogs, tallies, &rec); err != nil {
			return Recommendation{}, err
		}
		if err := e.penalizeKeyword(ctx, kw, tallies); err != nil {
			return Recommendation{}, err
		}
	}

	ranked := rankTallies(tallies, e.cfg.DuplicatePenalty)
	if len(ranked) == 0 {
		rec.Reason = ReasonNoPerformanceData
		return rec, nil
	}

	top := ranked[0]
	rec.Recommendation = &top.BlogName
	rec.BlogURL = top.BlogURL
	rec.Score = top.Score
	rec.Impressions = top.Impressions
	rec.Clicks = top.Clicks
	rec.DupCount = top.DupCount
	if len(ranked) > e.cfg.TopBlogs {
		ranked = ranked[:e.cfg.TopBlogs]
	}
	rec.AllBlogs = ranked

	e.logger.Debug("recommendation computed",
		logger.String("title", title),
		logger.String("blog", top.BlogName),
		logger.Int64("score", top.Score))

	return rec, nil
}

// scoreKeyword folds one keyword's per-site search performance into the
// blog tallies. Sites that map to no registered blog contribute nothing.
func (e *Engine) scoreKeyword(ctx context.Context, kw string, blogs blogSlice, tallies []*blogTally, rec *Recommendation) error {
	aggs, err := e.stats.AggregateKeywordStats(ctx, kw)
	if err != nil {
		return fmt.Errorf("aggregate stats for %q: %w", kw, err)
	}

	for _, agg := range aggs {
		idx := blogs.indexForSite(agg.Site)
		if idx < 0 {
			continue
		}
		t := tallies[idx]
		t.contributed = true
		t.score.Impressions += agg.Impressions
		t.score.Clicks += agg.Clicks
		t.score.Score += agg.Impressions*e.cfg.ImpressionWeight + agg.Clicks*e.cfg.ClickWeight

		if len(rec.Reasons) < e.cfg.MaxReasons {
			rec.Reasons = append(rec.Reasons, fmt.Sprintf("%s:%d", kw, agg.Impressions))
		}
	}
	return nil
}

// penalizeKeyword counts already-published posts matching the keyword per
// blog. The capped lookup bounds the penalty scan the same way it bounds
// the duplicate check.
func (e *Engine) penalizeKeyword(ctx context.Context, kw string, tallies []*blogTally) error {
	posts, err := e.posts.SearchPostsByKeyword(ctx, kw, e.cfg.PerKeywordCandidates)
	if err != nil {
		return fmt.Errorf("search posts for %q: %w", kw, err)
	}

	for _, p := range posts {
		for _, t := range tallies {
			if t.score.BlogID == p.BlogID {
				t.contributed = true
				t.score.DupCount++
				break
			}
		}
	}
	return nil
}

// rankTallies applies the duplication penalty and orders contributing blogs
// by final score descending, blog id ascending on ties.
func rankTallies(tallies []*blogTally, penalty int64) []BlogScore {
	ranked := make([]BlogScore, 0, len(tallies))
	for _, t := range tallies {
		if !t.contributed {
			continue
		}
		s := t.score
		s.Score -= s.DupCount * penalty
		ranked = append(ranked, s)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].BlogID < ranked[j].BlogID
	})
	return ranked
}

type blogSlice []models.Blog

// indexForSite maps a search-console site identifier onto a registered blog
// by host containment in the blog URL. Returns -1 when no blog matches.
func (blogs blogSlice) indexForSite(site string) int {
	for i, b := range blogs {
		if site != "" && strings.Contains(b.URL, site) {
			return i
		}
	}
	return -1
}
