package models

import "time"

// TitleStatus is the lifecycle label of a collected title.
type TitleStatus string

// Title lifecycle values. A missing or unknown status is treated as pending
// by all consumers.
const (
	StatusNew      TitleStatus = "new"
	StatusSaved    TitleStatus = "saved"
	StatusRejected TitleStatus = "rejected"
	StatusUsed     TitleStatus = "used"
)

// ValidStatus reports whether s is one of the known lifecycle values.
func ValidStatus(s TitleStatus) bool {
	switch s {
	case StatusNew, StatusSaved, StatusRejected, StatusUsed:
		return true
	}
	return false
}

// Normalize maps unknown or empty statuses to pending ("new").
func (s TitleStatus) Normalize() TitleStatus {
	if !ValidStatus(s) {
		return StatusNew
	}
	return s
}

// CollectedTitle is a candidate headline considered for future publication.
type CollectedTitle struct {
	ID        int64       `db:"id"         json:"id"`
	Title     string      `db:"title"      json:"title"`
	URL       string      `db:"url"        json:"url"`
	Source    string      `db:"source"     json:"source"`
	Status    TitleStatus `db:"status"     json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

// TitleInput is one element of a bulk title import.
type TitleInput struct {
	Title  string `binding:"required,min=1" json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// BulkTitlesRequest is the payload for POST /titles.
type BulkTitlesRequest struct {
	Titles []TitleInput `binding:"required,min=1,dive" json:"titles"`
}

// BulkStatusRequest is the payload for PUT /titles/status.
type BulkStatusRequest struct {
	IDs    []int64     `binding:"required,min=1" json:"ids"`
	Status TitleStatus `binding:"required"       json:"status"`
}

// TitlePage is a paginated title listing.
type TitlePage struct {
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Data  []CollectedTitle `json:"data"`
}

// StatusCount is one row of the per-status title breakdown.
type StatusCount struct {
	Status TitleStatus `db:"status" json:"status"`
	Count  int64       `db:"count"  json:"count"`
}
