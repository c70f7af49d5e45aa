package models

// Post represents an already-published article owned by a blog.
type Post struct {
	ID          int64  `db:"id"           json:"id"`
	BlogID      int64  `db:"blog_id"      json:"blog_id"`
	Title       string `db:"title"        json:"title"`
	URL         string `db:"url"          json:"url"`
	Keywords    string `db:"keywords"     json:"keywords"` // free text, comma separated
	PublishedAt string `db:"published_at" json:"published_at"`

	// Populated on joined reads only.
	BlogName string `db:"blog_name" json:"blog_name,omitempty"`
	Platform string `db:"platform"  json:"platform,omitempty"`
}

// PostInput is one element of a bulk post import.
type PostInput struct {
	BlogID      int64  `binding:"required"          json:"blog_id"`
	Title       string `binding:"required,min=1"    json:"title"`
	URL         string `json:"url"`
	Keywords    string `json:"keywords"`
	PublishedAt string `json:"published_at"`
}

// BulkPostsRequest is the payload for POST /posts.
type BulkPostsRequest struct {
	Posts []PostInput `binding:"required,min=1,dive" json:"posts"`
}
