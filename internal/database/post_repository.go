package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/twinssn/blogdex/internal/models"
)

// PostRepository provides database operations for published posts.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// BulkInsertPosts inserts posts, silently skipping rows whose (blog, title)
// pair already exists. Returns the number of rows actually inserted.
// Re-syncing the same export is therefore idempotent.
func (r *PostRepository) BulkInsertPosts(ctx context.Context, posts []models.PostInput) (int64, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	query := `
		INSERT INTO my_posts (blog_id, title, url, keywords, published_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		ON CONFLICT (blog_id, title) DO NOTHING
	`

	var inserted int64
	for _, p := range posts {
		result, execErr := tx.ExecContext(ctx, query, p.BlogID, p.Title, p.URL, p.Keywords, p.PublishedAt)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert post %q: %w", p.Title, execErr)
		}
		rows, raErr := result.RowsAffected()
		if raErr != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", raErr)
		}
		inserted += rows
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit posts: %w", err)
	}

	return inserted, nil
}

// ListPosts retrieves posts joined with their blog, newest first, optionally
// filtered by blog.
func (r *PostRepository) ListPosts(ctx context.Context, blogID int64, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	query := `
		SELECT p.id, p.blog_id, p.title, p.url,
		       COALESCE(p.keywords, '') AS keywords,
		       COALESCE(p.published_at::text, '') AS published_at,
		       b.name AS blog_name, b.platform
		FROM my_posts p
		JOIN blogs b ON b.id = p.blog_id
	`
	args := []any{}

	if blogID > 0 {
		query += ` WHERE p.blog_id = $1`
		args = append(args, blogID)
	}
	query += ` ORDER BY p.id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// SearchPostsByKeyword finds posts whose title or keyword text contains the
// keyword as a substring. Matching is case-sensitive and the scan is capped
// by limit.
func (r *PostRepository) SearchPostsByKeyword(ctx context.Context, kw string, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	query := `
		SELECT p.id, p.blog_id, p.title, p.url,
		       COALESCE(p.keywords, '') AS keywords,
		       COALESCE(p.published_at::text, '') AS published_at,
		       b.name AS blog_name, b.platform
		FROM my_posts p
		JOIN blogs b ON b.id = p.blog_id
		WHERE p.title LIKE '%' || $1 || '%'
		   OR p.keywords LIKE '%' || $1 || '%'
		ORDER BY p.id DESC
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &posts, query, kw, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts for %q: %w", kw, err)
	}

	return posts, nil
}

// CountPostsByBlog returns the number of published posts per blog.
func (r *PostRepository) CountPostsByBlog(ctx context.Context) (map[int64]int64, error) {
	rows := []struct {
		BlogID int64 `db:"blog_id"`
		Count  int64 `db:"count"`
	}{}
	query := `
		SELECT blog_id, COUNT(*) AS count
		FROM my_posts
		GROUP BY blog_id
	`

	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.BlogID] = row.Count
	}
	return counts, nil
}
