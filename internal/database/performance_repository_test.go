package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/twinssn/blogdex/internal/database"
	"github.com/twinssn/blogdex/internal/models"
)

func TestPerformanceRepository_BulkUpsertPerformance(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewPerformanceRepository(sqlxDB)

	data := []models.PerformanceInput{
		{PostID: 1, Date: "2026-08-29", Pageviews: 120, Sessions: 90, Clicks: 8, Impressions: 400},
		{PostID: 2, Date: "2026-08-29", Pageviews: 40, Sessions: 30, Clicks: 2, Impressions: 150},
	}

	mock.ExpectBegin()
	for _, d := range data {
		mock.ExpectExec("INSERT INTO performance").
			WithArgs(d.PostID, d.Date, d.Pageviews, d.Sessions, d.Clicks, d.Impressions).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	written, err := repo.BulkUpsertPerformance(context.Background(), data)
	if err != nil {
		t.Fatalf("BulkUpsertPerformance() unexpected error: %v", err)
	}
	if written != 2 {
		t.Errorf("BulkUpsertPerformance() written = %d, want 2", written)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestPerformanceRepository_GetRevenueSummary(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewPerformanceRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"date", "sub_id", "clicks", "orders", "revenue"}).
		AddRow("2026-08-29", "techsuni", 50, 4, 38200.0).
		AddRow("2026-08-28", "salimsuni", 20, 1, 9100.0)
	mock.ExpectQuery("SELECT (.+) FROM revenue_stats").WillReturnRows(rows)

	summary, err := repo.GetRevenueSummary(context.Background(), 30)
	if err != nil {
		t.Fatalf("GetRevenueSummary() unexpected error: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("GetRevenueSummary() returned %d rows, want 2", len(summary))
	}
	if summary[0].SubID != "techsuni" || summary[0].Revenue != 38200.0 {
		t.Errorf("GetRevenueSummary() row = %+v", summary[0])
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}
