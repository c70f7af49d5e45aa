package models

import "time"

// Blog represents a registered blog property in the network.
type Blog struct {
	ID            int64     `db:"id"              json:"id"`
	Name          string    `db:"name"            json:"name"`
	Platform      string    `db:"platform"        json:"platform"` // e.g. "wordpress", "blogger", "hugo"
	URL           string    `db:"url"             json:"url"`
	GA4PropertyID string    `db:"ga4_property_id" json:"ga4_property_id"`
	CreatedAt     time.Time `db:"created_at"      json:"created_at"`
}

// BlogCreateRequest is the payload for registering a blog.
type BlogCreateRequest struct {
	Name          string `binding:"required,min=1,max=255" json:"name"`
	Platform      string `binding:"required,min=1,max=64"  json:"platform"`
	URL           string `json:"url"`
	GA4PropertyID string `json:"ga4_property_id"`
}
