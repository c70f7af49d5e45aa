package models

// SearchKeywordStat is one search-console performance row for a query on a
// site/date. Rows are upserted by the (site, date, query) natural key.
type SearchKeywordStat struct {
	Site        string  `db:"site"         json:"site"`
	Date        string  `db:"date"         json:"date"` // YYYY-MM-DD
	Query       string  `db:"query"        json:"query"`
	Clicks      int64   `db:"clicks"       json:"clicks"`
	Impressions int64   `db:"impressions"  json:"impressions"`
	CTR         float64 `db:"ctr"          json:"ctr"`
	AvgPosition float64 `db:"avg_position" json:"avg_position"`
}

// ComputeCTR derives click-through rate, guarding the zero-impression case.
func ComputeCTR(clicks, impressions int64) float64 {
	if impressions == 0 {
		return 0
	}
	return float64(clicks) / float64(impressions)
}

// BulkKeywordStatsRequest is the payload for POST /keywords.
type BulkKeywordStatsRequest struct {
	Stats []SearchKeywordStat `binding:"required,min=1,dive" json:"stats"`
}

// SiteKeywordAggregate is the per-site roll-up of stats whose query matched
// a keyword.
type SiteKeywordAggregate struct {
	Site        string `db:"site"        json:"site"`
	Clicks      int64  `db:"clicks"      json:"clicks"`
	Impressions int64  `db:"impressions" json:"impressions"`
}

// QueryAggregate is the per-query roll-up over a date window, with the site
// that showed the query most.
type QueryAggregate struct {
	Query       string  `db:"query"        json:"query"`
	Clicks      int64   `db:"clicks"       json:"clicks"`
	Impressions int64   `db:"impressions"  json:"impressions"`
	AvgPosition float64 `db:"avg_position" json:"avg_position"`
	BestSite    string  `db:"best_site"    json:"best_site"`
}

// DailySiteStat is the daily per-site roll-up produced by the stats worker.
type DailySiteStat struct {
	Site        string  `db:"site"         json:"site"`
	Date        string  `db:"date"         json:"date"`
	Clicks      int64   `db:"clicks"       json:"clicks"`
	Impressions int64   `db:"impressions"  json:"impressions"`
	CTR         float64 `db:"ctr"          json:"ctr"`
	AvgPosition float64 `db:"avg_position" json:"avg_position"`
}

// RevenueStat is one affiliate-revenue row keyed by (date, sub_id).
type RevenueStat struct {
	Date    string  `db:"date"    json:"date"`
	SubID   string  `db:"sub_id"  json:"sub_id"`
	Clicks  int64   `db:"clicks"  json:"clicks"`
	Orders  int64   `db:"orders"  json:"orders"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

// PerformanceInput is one per-post analytics row keyed by (post_id, date).
type PerformanceInput struct {
	PostID      int64  `binding:"required"       json:"post_id"`
	Date        string `binding:"required,len=10" json:"date"` // YYYY-MM-DD
	Pageviews   int64  `json:"pageviews"`
	Sessions    int64  `json:"sessions"`
	Clicks      int64  `json:"clicks"`
	Impressions int64  `json:"impressions"`
}

// BulkPerformanceRequest is the payload for POST /performance.
type BulkPerformanceRequest struct {
	Data []PerformanceInput `binding:"required,min=1,dive" json:"data"`
}

// PostPerformance is the joined per-post aggregate for GET /performance.
type PostPerformance struct {
	Title       string `db:"title"       json:"title"`
	BlogName    string `db:"blog_name"   json:"blog_name"`
	Platform    string `db:"platform"    json:"platform"`
	Pageviews   int64  `db:"pageviews"   json:"pageviews"`
	Clicks      int64  `db:"clicks"      json:"clicks"`
	Impressions int64  `db:"impressions" json:"impressions"`
}
