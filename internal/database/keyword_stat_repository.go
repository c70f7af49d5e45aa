package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/twinssn/blogdex/internal/models"
)

// KeywordStatRepository provides database operations for search-console
// keyword stats and their roll-ups.
type KeywordStatRepository struct {
	db *sqlx.DB
}

// NewKeywordStatRepository creates a new keyword stat repository.
func NewKeywordStatRepository(db *sqlx.DB) *KeywordStatRepository {
	return &KeywordStatRepository{db: db}
}

// BulkUpsertStats writes keyword stats, replacing existing rows on the
// (site, date, query) natural key. Daily exports overwrite themselves
// cleanly on re-ingestion.
func (r *KeywordStatRepository) BulkUpsertStats(ctx context.Context, stats []models.SearchKeywordStat) (int64, error) {
	if len(stats) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO gsc_keywords (site, date, query, clicks, impressions, ctr, avg_position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (site, date, query) DO UPDATE SET
			clicks = EXCLUDED.clicks,
			impressions = EXCLUDED.impressions,
			ctr = EXCLUDED.ctr,
			avg_position = EXCLUDED.avg_position
	`

	for _, s := range stats {
		ctr := s.CTR
		if ctr == 0 {
			ctr = models.ComputeCTR(s.Clicks, s.Impressions)
		}
		if _, execErr := tx.ExecContext(ctx, query,
			s.Site, s.Date, s.Query, s.Clicks, s.Impressions, ctr, s.AvgPosition,
		); execErr != nil {
			return 0, fmt.Errorf("failed to upsert stat %q: %w", s.Query, execErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit stats: %w", err)
	}

	return int64(len(stats)), nil
}

// AggregateKeywordStats rolls up clicks and impressions per site over all
// rows whose query contains the keyword as a substring.
func (r *KeywordStatRepository) AggregateKeywordStats(ctx context.Context, kw string) ([]models.SiteKeywordAggregate, error) {
	aggs := []models.SiteKeywordAggregate{}
	query := `
		SELECT site, SUM(clicks) AS clicks, SUM(impressions) AS impressions
		FROM gsc_keywords
		WHERE query LIKE '%' || $1 || '%'
		GROUP BY site
	`

	if err := r.db.SelectContext(ctx, &aggs, query, kw); err != nil {
		return nil, fmt.Errorf("failed to aggregate stats for %q: %w", kw, err)
	}

	return aggs, nil
}

// TopQueries rolls up stats per query over the trailing window, attaching
// the site that showed the query most. Ordered by impressions descending.
func (r *KeywordStatRepository) TopQueries(ctx context.Context, days, limit int) ([]models.QueryAggregate, error) {
	cutoff := windowCutoff(days)

	aggs := []models.QueryAggregate{}
	query := `
		SELECT g.query,
		       SUM(g.clicks) AS clicks,
		       SUM(g.impressions) AS impressions,
		       AVG(g.avg_position) AS avg_position,
		       (SELECT g2.site
		        FROM gsc_keywords g2
		        WHERE g2.query = g.query AND g2.date >= $1
		        GROUP BY g2.site
		        ORDER BY SUM(g2.impressions) DESC
		        LIMIT 1) AS best_site
		FROM gsc_keywords g
		WHERE g.date >= $1
		GROUP BY g.query
		ORDER BY impressions DESC
		LIMIT $2
	`

	if err := r.db.SelectContext(ctx, &aggs, query, cutoff, limit); err != nil {
		return nil, fmt.Errorf("failed to load top queries: %w", err)
	}

	return aggs, nil
}

// RollupDay aggregates one day of keyword stats into daily_site_stats,
// replacing any prior roll-up for that day. Returns the number of site rows
// written.
func (r *KeywordStatRepository) RollupDay(ctx context.Context, date string) (int64, error) {
	query := `
		INSERT INTO daily_site_stats (site, date, clicks, impressions, ctr, avg_position)
		SELECT site, date,
		       SUM(clicks),
		       SUM(impressions),
		       CASE WHEN SUM(impressions) > 0
		            THEN SUM(clicks)::float / SUM(impressions)
		            ELSE 0 END,
		       AVG(avg_position)
		FROM gsc_keywords
		WHERE date = $1
		GROUP BY site, date
		ON CONFLICT (site, date) DO UPDATE SET
			clicks = EXCLUDED.clicks,
			impressions = EXCLUDED.impressions,
			ctr = EXCLUDED.ctr,
			avg_position = EXCLUDED.avg_position
	`

	result, err := r.db.ExecContext(ctx, query, date)
	if err != nil {
		return 0, fmt.Errorf("failed to roll up stats for %s: %w", date, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// windowCutoff returns the YYYY-MM-DD lower bound for a trailing window of
// days, defaulting to 30.
func windowCutoff(days int) string {
	if days <= 0 {
		days = 30
	}
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}
