package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/twinssn/blogdex/internal/models"
)

// TitleRepository provides database operations for collected titles.
type TitleRepository struct {
	db *sqlx.DB
}

// NewTitleRepository creates a new title repository.
func NewTitleRepository(db *sqlx.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

// Pagination bounds for title listings.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// BulkInsertTitles inserts collected titles, silently skipping titles
// already on file. New rows start in the pending ("new") status. Returns the
// number of rows actually inserted.
func (r *TitleRepository) BulkInsertTitles(ctx context.Context, titles []models.TitleInput) (int64, error) {
	if len(titles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO collected_titles (title, url, source, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (title) DO NOTHING
	`

	var inserted int64
	for _, t := range titles {
		result, execErr := tx.ExecContext(ctx, query, t.Title, t.URL, t.Source, models.StatusNew)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert title %q: %w", t.Title, execErr)
		}
		rows, raErr := result.RowsAffected()
		if raErr != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", raErr)
		}
		inserted += rows
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit titles: %w", err)
	}

	return inserted, nil
}

// ListTitles retrieves a page of titles, newest first, optionally filtered
// by status. Page numbers start at 1.
func (r *TitleRepository) ListTitles(ctx context.Context, status models.TitleStatus, page, limit int) (*models.TitlePage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	where := ""
	args := []any{}
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM collected_titles` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count titles: %w", err)
	}

	titles := []models.CollectedTitle{}
	listQuery := `
		SELECT id, title, COALESCE(url, '') AS url, COALESCE(source, '') AS source, status, created_at
		FROM collected_titles` + where + fmt.Sprintf(`
		ORDER BY id DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	if err := r.db.SelectContext(ctx, &titles, listQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	normalizeStatuses(titles)

	return &models.TitlePage{
		Total: total,
		Page:  page,
		Limit: limit,
		Data:  titles,
	}, nil
}

// SearchTitles finds titles containing the query as a substring, optionally
// filtered by status. The scan is capped at MaxPageLimit rows.
func (r *TitleRepository) SearchTitles(ctx context.Context, q string, status models.TitleStatus) ([]models.CollectedTitle, error) {
	titles := []models.CollectedTitle{}
	query := `
		SELECT id, title, COALESCE(url, '') AS url, COALESCE(source, '') AS source, status, created_at
		FROM collected_titles
		WHERE title LIKE '%' || $1 || '%'
	`
	args := []any{q}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY id DESC LIMIT $%d`, len(args)+1)
	args = append(args, MaxPageLimit)

	if err := r.db.SelectContext(ctx, &titles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search titles: %w", err)
	}
	normalizeStatuses(titles)

	return titles, nil
}

// ListPendingTitles retrieves titles awaiting triage, oldest first, capped
// at limit.
func (r *TitleRepository) ListPendingTitles(ctx context.Context, limit int) ([]models.CollectedTitle, error) {
	titles := []models.CollectedTitle{}
	query := `
		SELECT id, title, COALESCE(url, '') AS url, COALESCE(source, '') AS source, status, created_at
		FROM collected_titles
		WHERE status = $1
		ORDER BY id ASC
		LIMIT $2
	`

	if err := r.db.SelectContext(ctx, &titles, query, models.StatusNew, limit); err != nil {
		return nil, fmt.Errorf("failed to list pending titles: %w", err)
	}
	normalizeStatuses(titles)

	return titles, nil
}

// normalizeStatuses maps statuses outside the known lifecycle (rows written
// before the lifecycle existed) back to pending.
func normalizeStatuses(titles []models.CollectedTitle) {
	for i := range titles {
		titles[i].Status = titles[i].Status.Normalize()
	}
}

// UpdateTitleStatus moves titles to a new lifecycle status and returns the
// number of rows changed. IDs not on file are skipped, not errors; an empty
// id list is rejected.
func (r *TitleRepository) UpdateTitleStatus(ctx context.Context, ids []int64, status models.TitleStatus) (int64, error) {
	if !models.ValidStatus(status) {
		return 0, models.ErrInvalidStatus
	}
	if len(ids) == 0 {
		return 0, models.ErrNoFieldsToUpdate
	}

	query, args, err := sqlx.In(`UPDATE collected_titles SET status = ? WHERE id IN (?)`, status, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build status update: %w", err)
	}
	query = r.db.Rebind(query)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update title status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// CountTitlesByStatus returns the per-status breakdown of collected titles.
func (r *TitleRepository) CountTitlesByStatus(ctx context.Context) ([]models.StatusCount, error) {
	counts := []models.StatusCount{}
	query := `
		SELECT status, COUNT(*) AS count
		FROM collected_titles
		GROUP BY status
		ORDER BY status ASC
	`

	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count titles by status: %w", err)
	}

	return counts, nil
}
