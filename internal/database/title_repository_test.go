package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/twinssn/blogdex/internal/database"
	"github.com/twinssn/blogdex/internal/models"
)

func titleColumns() []string {
	return []string{"id", "title", "url", "source", "status", "created_at"}
}

func TestTitleRepository_BulkInsertTitles(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewTitleRepository(sqlxDB)

	titles := []models.TitleInput{
		{Title: "전기차 보조금 신청 방법", Source: "naver"},
		{Title: "전기차 보조금 신청 방법", Source: "naver"}, // crawler re-sent the same title
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO collected_titles").
		WithArgs("전기차 보조금 신청 방법", "", "naver", models.StatusNew).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO collected_titles").
		WithArgs("전기차 보조금 신청 방법", "", "naver", models.StatusNew).
		WillReturnResult(sqlmock.NewResult(0, 0)) // conflict, skipped
	mock.ExpectCommit()

	inserted, err := repo.BulkInsertTitles(context.Background(), titles)
	if err != nil {
		t.Fatalf("BulkInsertTitles() unexpected error: %v", err)
	}
	if inserted != 1 {
		t.Errorf("BulkInsertTitles() inserted = %d, want 1", inserted)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestTitleRepository_ListTitles(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewTitleRepository(sqlxDB)

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(120)
	mock.ExpectQuery("SELECT COUNT").WithArgs(models.StatusNew).WillReturnRows(countRows)

	listRows := sqlmock.NewRows(titleColumns()).
		AddRow(12, "전기차 보조금 신청 방법", "", "naver", "new", time.Now()).
		AddRow(11, "강아지 사료 추천 순위", "", "naver", "new", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM collected_titles").
		WithArgs(models.StatusNew, 50, 50).
		WillReturnRows(listRows)

	page, err := repo.ListTitles(context.Background(), models.StatusNew, 2, 0)
	if err != nil {
		t.Fatalf("ListTitles() unexpected error: %v", err)
	}
	if page.Total != 120 || page.Page != 2 || page.Limit != database.DefaultPageLimit {
		t.Errorf("ListTitles() page meta = %+v", page)
	}
	if len(page.Data) != 2 || page.Data[0].ID != 12 {
		t.Errorf("ListTitles() data = %+v", page.Data)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestTitleRepository_UpdateTitleStatus(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewTitleRepository(sqlxDB)
	ctx := context.Background()

	mock.ExpectExec("UPDATE collected_titles SET status").
		WithArgs(models.StatusSaved, int64(1), int64(2), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 2)) // id 99 not on file

	updated, err := repo.UpdateTitleStatus(ctx, []int64{1, 2, 99}, models.StatusSaved)
	if err != nil {
		t.Fatalf("UpdateTitleStatus() unexpected error: %v", err)
	}
	if updated != 2 {
		t.Errorf("UpdateTitleStatus() updated = %d, want 2", updated)
	}

	if _, err := repo.UpdateTitleStatus(ctx, []int64{1}, "archived"); !errors.Is(err, models.ErrInvalidStatus) {
		t.Errorf("UpdateTitleStatus() error = %v, want ErrInvalidStatus", err)
	}

	if _, err := repo.UpdateTitleStatus(ctx, nil, models.StatusSaved); !errors.Is(err, models.ErrNoFieldsToUpdate) {
		t.Errorf("UpdateTitleStatus() error = %v, want ErrNoFieldsToUpdate", err)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestTitleRepository_ListTitlesNormalizesUnknownStatus(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewTitleRepository(sqlxDB)

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(2)
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(countRows)

	// Row written before the lifecycle existed carries a retired status.
	listRows := sqlmock.NewRows(titleColumns()).
		AddRow(2, "전기차 보조금 신청 방법", "", "naver", "pending_review", time.Now()).
		AddRow(1, "강아지 사료 추천 순위", "", "naver", "saved", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM collected_titles").
		WithArgs(50, 0).
		WillReturnRows(listRows)

	page, err := repo.ListTitles(context.Background(), "", 1, 0)
	if err != nil {
		t.Fatalf("ListTitles() unexpected error: %v", err)
	}
	if page.Data[0].Status != models.StatusNew {
		t.Errorf("ListTitles() status = %q, want %q", page.Data[0].Status, models.StatusNew)
	}
	if page.Data[1].Status != models.StatusSaved {
		t.Errorf("ListTitles() status = %q, want %q", page.Data[1].Status, models.StatusSaved)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestTitleRepository_CountTitlesByStatus(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewTitleRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("new", 40).
		AddRow("saved", 12).
		AddRow("used", 3)
	mock.ExpectQuery("SELECT status, COUNT").WillReturnRows(rows)

	counts, err := repo.CountTitlesByStatus(context.Background())
	if err != nil {
		t.Fatalf("CountTitlesByStatus() unexpected error: %v", err)
	}
	if len(counts) != 3 || counts[0].Status != models.StatusNew || counts[0].Count != 40 {
		t.Errorf("CountTitlesByStatus() = %+v", counts)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}
