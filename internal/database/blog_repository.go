package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/twinssn/blogdex/internal/models"
)

// BlogRepository provides database operations for registered blogs.
type BlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository creates a new blog repository.
func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// CreateBlog registers a blog. Names are unique across the network.
func (r *BlogRepository) CreateBlog(ctx context.Context, req *models.BlogCreateRequest) (*models.Blog, error) {
	blog := &models.Blog{}
	query := `
		INSERT INTO blogs (name, platform, url, ga4_property_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, platform, url, ga4_property_id, created_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		req.Name, req.Platform, req.URL, req.GA4PropertyID,
	).StructScan(blog)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return nil, models.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	return blog, nil
}

// GetBlogByID retrieves a blog by ID.
func (r *BlogRepository) GetBlogByID(ctx context.Context, id int64) (*models.Blog, error) {
	blog := &models.Blog{}
	query := `
		SELECT id, name, platform, url, ga4_property_id, created_at
		FROM blogs
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, blog, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	return blog, nil
}

// ListBlogs retrieves all registered blogs ordered by ID.
func (r *BlogRepository) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	blogs := []models.Blog{}
	query := `
		SELECT id, name, platform, url, ga4_property_id, created_at
		FROM blogs
		ORDER BY id ASC
	`

	err := r.db.SelectContext(ctx, &blogs, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	return blogs, nil
}

// DeleteBlog removes a blog. Posts cascade via the schema.
func (r *BlogRepository) DeleteBlog(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return models.ErrNotFound
	}

	return nil
}
