package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/twinssn/blogdex/internal/database"
	"github.com/twinssn/blogdex/internal/models"
)

func TestKeywordStatRepository_BulkUpsertStats(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewKeywordStatRepository(sqlxDB)

	stats := []models.SearchKeywordStat{
		{Site: "techsuni.example.com", Date: "2026-08-29", Query: "전기차 보조금", Clicks: 5, Impressions: 100, AvgPosition: 8.2},
	}

	mock.ExpectBegin()
	// CTR is derived when the export omits it: 5/100.
	mock.ExpectExec("INSERT INTO gsc_keywords").
		WithArgs("techsuni.example.com", "2026-08-29", "전기차 보조금", int64(5), int64(100), 0.05, 8.2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	written, err := repo.BulkUpsertStats(context.Background(), stats)
	if err != nil {
		t.Fatalf("BulkUpsertStats() unexpected error: %v", err)
	}
	if written != 1 {
		t.Errorf("BulkUpsertStats() written = %d, want 1", written)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestKeywordStatRepository_AggregateKeywordStats(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewKeywordStatRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"site", "clicks", "impressions"}).
		AddRow("techsuni.example.com", 50, 1000).
		AddRow("salimsuni.example.com", 0, 2000)
	mock.ExpectQuery("SELECT site, SUM").WithArgs("보조금").WillReturnRows(rows)

	aggs, err := repo.AggregateKeywordStats(context.Background(), "보조금")
	if err != nil {
		t.Fatalf("AggregateKeywordStats() unexpected error: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("AggregateKeywordStats() returned %d rows, want 2", len(aggs))
	}
	if aggs[0].Site != "techsuni.example.com" || aggs[0].Impressions != 1000 {
		t.Errorf("AggregateKeywordStats() row = %+v", aggs[0])
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestKeywordStatRepository_RollupDay(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewKeywordStatRepository(sqlxDB)

	mock.ExpectExec("INSERT INTO daily_site_stats").
		WithArgs("2026-08-29").
		WillReturnResult(sqlmock.NewResult(0, 4))

	written, err := repo.RollupDay(context.Background(), "2026-08-29")
	if err != nil {
		t.Fatalf("RollupDay() unexpected error: %v", err)
	}
	if written != 4 {
		t.Errorf("RollupDay() written = %d, want 4", written)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}
