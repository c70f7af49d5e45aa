package recommend

import (
	"sort"

	"github.com/twinssn/blogdex/internal/keyword"
	"github.com/twinssn/blogdex/internal/models"
)

// Commercial-value weights applied to impressions when scoring a query.
const (
	highValueWeight   = 3.0
	mediumValueWeight = 1.0
	lowValueWeight    = 0.3

	// Queries ranking just off the first page are the cheapest wins. The
	// bonus surfaces them above established top rankings.
	opportunityBonus   = 1.5
	opportunityPosLow  = 5.0
	opportunityPosHigh = 20.0
)

// ScoredKeyword is one query in the value report.
type ScoredKeyword struct {
	Query       string        `json:"query"`
	Value       keyword.Value `json:"value"`
	Score       float64       `json:"score"`
	Clicks      int64         `json:"clicks"`
	Impressions int64         `json:"impressions"`
	CTR         float64       `json:"ctr"`
	AvgPosition float64       `json:"avg_position"`
	BestSite    string        `json:"best_site"`
}

// BuildKeywordReport classifies and scores aggregated queries by revenue
// potential. The score is impressions weighted by commercial value, with an
// opportunity bonus for queries ranking between positions 5 and 20. Results
// come back sorted by score descending, truncated to limit (limit <= 0 means
// no truncation).
func BuildKeywordReport(aggs []models.QueryAggregate, c *keyword.Classifier, limit int) []ScoredKeyword {
	scored := make([]ScoredKeyword, 0, len(aggs))
	for _, agg := range aggs {
		value := c.Classify(agg.Query)

		weight := mediumValueWeight
		switch value {
		case keyword.ValueHigh:
			weight = highValueWeight
		case keyword.ValueLow:
			weight = lowValueWeight
		}

		score := float64(agg.Impressions) * weight
		if agg.AvgPosition >= opportunityPosLow && agg.AvgPosition <= opportunityPosHigh {
			score *= opportunityBonus
		}

		scored = append(scored, ScoredKeyword{
			Query:       agg.Query,
			Value:       value,
			Score:       score,
			Clicks:      agg.Clicks,
			Impressions: agg.Impressions,
			CTR:         models.ComputeCTR(agg.Clicks, agg.Impressions),
			AvgPosition: agg.AvgPosition,
			BestSite:    agg.BestSite,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
