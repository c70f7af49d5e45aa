package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/twinssn/blogdex/internal/models"
)

// PerformanceRepository provides database operations for per-post analytics
// and affiliate revenue rows.
type PerformanceRepository struct {
	db *sqlx.DB
}

// NewPerformanceRepository creates a new performance repository.
func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

// BulkUpsertPerformance writes per-post analytics rows, replacing existing
// rows on the (post_id, date) key.
func (r *PerformanceRepository) BulkUpsertPerformance(ctx context.Context, data []models.PerformanceInput) (int64, error) {
	if len(data) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO performance (post_id, date, pageviews, sessions, clicks, impressions)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (post_id, date) DO UPDATE SET
			pageviews = EXCLUDED.pageviews,
			sessions = EXCLUDED.sessions,
			clicks = EXCLUDED.clicks,
			impressions = EXCLUDED.impressions
	`

	for _, d := range data {
		if _, execErr := tx.ExecContext(ctx, query,
			d.PostID, d.Date, d.Pageviews, d.Sessions, d.Clicks, d.Impressions,
		); execErr != nil {
			return 0, fmt.Errorf("failed to upsert performance for post %d: %w", d.PostID, execErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit performance rows: %w", err)
	}

	return int64(len(data)), nil
}

// GetPerformance aggregates analytics per post over the trailing window,
// joined with the owning blog, busiest posts first.
func (r *PerformanceRepository) GetPerformance(ctx context.Context, days int) ([]models.PostPerformance, error) {
	cutoff := windowCutoff(days)

	results := []models.PostPerformance{}
	query := `
		SELECT p.title, b.name AS blog_name, b.platform,
		       SUM(pf.pageviews) AS pageviews,
		       SUM(pf.clicks) AS clicks,
		       SUM(pf.impressions) AS impressions
		FROM performance pf
		JOIN my_posts p ON p.id = pf.post_id
		JOIN blogs b ON b.id = p.blog_id
		WHERE pf.date >= $1
		GROUP BY p.id, p.title, b.name, b.platform
		ORDER BY pageviews DESC
	`

	if err := r.db.SelectContext(ctx, &results, query, cutoff); err != nil {
		return nil, fmt.Errorf("failed to load performance: %w", err)
	}

	return results, nil
}

// BulkUpsertRevenue writes affiliate revenue rows, replacing existing rows
// on the (date, sub_id) key.
func (r *PerformanceRepository) BulkUpsertRevenue(ctx context.Context, rows []models.RevenueStat) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO revenue_stats (date, sub_id, clicks, orders, revenue)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date, sub_id) DO UPDATE SET
			clicks = EXCLUDED.clicks,
			orders = EXCLUDED.orders,
			revenue = EXCLUDED.revenue
	`

	for _, row := range rows {
		if _, execErr := tx.ExecContext(ctx, query,
			row.Date, row.SubID, row.Clicks, row.Orders, row.Revenue,
		); execErr != nil {
			return 0, fmt.Errorf("failed to upsert revenue for %s/%s: %w", row.Date, row.SubID, execErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit revenue rows: %w", err)
	}

	return int64(len(rows)), nil
}

// GetRevenueSummary sums affiliate revenue per sub_id over the trailing
// window, highest revenue first.
func (r *PerformanceRepository) GetRevenueSummary(ctx context.Context, days int) ([]models.RevenueStat, error) {
	cutoff := windowCutoff(days)

	rows := []models.RevenueStat{}
	query := `
		SELECT MAX(date)::text AS date, sub_id,
		       SUM(clicks) AS clicks,
		       SUM(orders) AS orders,
		       SUM(revenue) AS revenue
		FROM revenue_stats
		WHERE date >= $1
		GROUP BY sub_id
		ORDER BY revenue DESC
	`

	if err := r.db.SelectContext(ctx, &rows, query, cutoff); err != nil {
		return nil, fmt.Errorf("failed to load revenue summary: %w", err)
	}

	return rows, nil
}
