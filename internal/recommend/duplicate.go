package recommend

import (
	"context"
	"fmt"

	"github.com/twinssn/blogdex/internal/keyword"
	"github.com/twinssn/blogdex/internal/logger"
	"github.com/twinssn/blogdex/internal/match"
	"github.com/twinssn/blogdex/internal/models"
)

// DuplicateMatch is one already-published post related to the checked title.
type DuplicateMatch struct {
	BlogID     int64  `json:"blog_id"`
	BlogName   string `json:"blog_name"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	MatchCount int    `json:"match_count"`
}

// DuplicateResult is the outcome of a duplicate check. No matches means the
// topic is reported fresh; with incomplete corpus coverage that is a
// documented false-negative risk, not an error.
type DuplicateResult struct {
	Query       string           `json:"query"`
	Keywords    []string         `json:"keywords"`
	IsDuplicate bool             `json:"is_duplicate"`
	Matches     []DuplicateMatch `json:"matches"`
}

// CheckDuplicate tokenizes the title and ranks published posts containing at
// least MinOverlap of its keywords. Fewer than two surviving tokens is
// insufficient signal: the check reports zero matches rather than relaxing
// the threshold.
func (e *Engine) CheckDuplicate(ctx context.Context, title string) (DuplicateResult, error) {
	tokens := keyword.Tokenize(title)
	result := DuplicateResult{
		Query:    title,
		Keywords: tokens,
		Matches:  []DuplicateMatch{},
	}

	if len(tokens) < e.cfg.MinOverlap {
		e.logger.Debug("duplicate check skipped, insufficient keywords",
			logger.String("title", title),
			logger.Int("tokens", len(tokens)))
		return result, nil
	}

	corpus, err := e.collectPostCorpus(ctx, tokens)
	if err != nil {
		return DuplicateResult{}, err
	}

	ranked := match.Match(tokens, corpus, e.cfg.MinOverlap, e.cfg.MaxMatches)
	for _, r := range ranked {
		post, ok := r.Doc.Ref.(models.Post)
		if !ok {
			continue
		}
		result.Matches = append(result.Matches, DuplicateMatch{
			BlogID:     post.BlogID,
			BlogName:   post.BlogName,
			Title:      post.Title,
			URL:        post.URL,
			MatchCount: r.MatchCount,
		})
	}
	result.IsDuplicate = len(result.Matches) > 0

	return result, nil
}

// collectPostCorpus unions the capped per-keyword post lookups. Each keyword
// incurs its own query; the cap keeps total fan-out bounded.
func (e *Engine) collectPostCorpus(ctx context.Context, tokens []string) ([]match.Doc, error) {
	corpus := make([]match.Doc, 0, len(tokens)*e.cfg.PerKeywordCandidates)
	for _, kw := range tokens {
		posts, err := e.posts.SearchPostsByKeyword(ctx, kw, e.cfg.PerKeywordCandidates)
		if err != nil {
			return nil, fmt.Errorf("search posts for %q: %w", kw, err)
		}
		for _, p := range posts {
			corpus = append(corpus, match.Doc{
				Key:  match.DocKey(p.URL, p.Title),
				Text: p.Title,
				Ref:  p,
			})
		}
	}
	return corpus, nil
}

// AnalyzeResult summarizes a batch triage of pending titles.
type AnalyzeResult struct {
	Total      int               `json:"total"`
	Duplicates int               `json:"duplicates"`
	Fresh      int               `json:"fresh"`
	FreshList  []AnalyzedTitle   `json:"fresh_titles"`
	DupList    []AnalyzedDup     `json:"duplicate_titles"`
}

// AnalyzedTitle is a pending title with no related published content.
type AnalyzedTitle struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// AnalyzedDup is a pending title with its best-matching published post.
type AnalyzedDup struct {
	TitleID     int64  `json:"title_id"`
	Title       string `json:"title"`
	MatchedPost string `json:"matched_post"`
}

const analyzeListCap = 100

// Analyze runs a duplicate check over each pending title and splits the
// batch into fresh and duplicate buckets. The per-bucket detail lists are
// capped; the counts are not.
func (e *Engine) Analyze(ctx context.Context, titles []models.CollectedTitle) (AnalyzeResult, error) {
	result := AnalyzeResult{
		Total:     len(titles),
		FreshList: []AnalyzedTitle{},
		DupList:   []AnalyzedDup{},
	}

	for _, t := range titles {
		check, err := e.CheckDuplicate(ctx, t.Title)
		if err != nil {
			return AnalyzeResult{}, err
		}
		if check.IsDuplicate {
			result.Duplicates++
			if len(result.DupList) < analyzeListCap {
				result.DupList = append(result.DupList, AnalyzedDup{
					TitleID:     t.ID,
					Title:       t.Title,
					MatchedPost: check.Matches[0].Title,
				})
			}
			continue
		}
		result.Fresh++
		if len(result.FreshList) < analyzeListCap {
			result.FreshList = append(result.FreshList, AnalyzedTitle{ID: t.ID, Title: t.Title})
		}
	}

	return result, nil
}
