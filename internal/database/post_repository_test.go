package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/twinssn/blogdex/internal/database"
	"github.com/twinssn/blogdex/internal/models"
)

func postColumns() []string {
	return []string{"id", "blog_id", "title", "url", "keywords", "published_at", "blog_name", "platform"}
}

func TestPostRepository_BulkInsertPosts(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewPostRepository(sqlxDB)

	posts := []models.PostInput{
		{BlogID: 1, Title: "전기차 보조금 신청 총정리", URL: "https://b1.example.com/ev", Keywords: "전기차,보조금"},
		{BlogID: 1, Title: "전기차 보조금 신청 총정리", URL: "https://b1.example.com/ev-2"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO my_posts").
		WithArgs(int64(1), posts[0].Title, posts[0].URL, posts[0].Keywords, "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Second row conflicts on (blog_id, title) and inserts nothing.
	mock.ExpectExec("INSERT INTO my_posts").
		WithArgs(int64(1), posts[1].Title, posts[1].URL, "", "").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	inserted, err := repo.BulkInsertPosts(context.Background(), posts)
	if err != nil {
		t.Fatalf("BulkInsertPosts() unexpected error: %v", err)
	}
	if inserted != 1 {
		t.Errorf("BulkInsertPosts() inserted = %d, want 1", inserted)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestPostRepository_ListPosts(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewPostRepository(sqlxDB)

	rows := sqlmock.NewRows(postColumns()).
		AddRow(2, 1, "강아지 사료 추천", "https://b1.example.com/dog", "", "", "테크수니", "wordpress").
		AddRow(1, 1, "전기차 보조금 신청 총정리", "https://b1.example.com/ev", "전기차,보조금", "2026-08-01", "테크수니", "wordpress")
	mock.ExpectQuery("SELECT (.+) FROM my_posts").
		WithArgs(int64(1), 100).
		WillReturnRows(rows)

	posts, err := repo.ListPosts(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("ListPosts() unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("ListPosts() returned %d posts, want 2", len(posts))
	}
	if posts[1].PublishedAt != "2026-08-01" {
		t.Errorf("ListPosts() post = %+v", posts[1])
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestPostRepository_SearchPostsByKeyword(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewPostRepository(sqlxDB)

	rows := sqlmock.NewRows(postColumns()).
		AddRow(1, 1, "전기차 보조금 신청 총정리", "https://b1.example.com/ev", "", "", "테크수니", "wordpress")
	mock.ExpectQuery("SELECT (.+) FROM my_posts").
		WithArgs("보조금", 20).
		WillReturnRows(rows)

	posts, err := repo.SearchPostsByKeyword(context.Background(), "보조금", 20)
	if err != nil {
		t.Fatalf("SearchPostsByKeyword() unexpected error: %v", err)
	}
	if len(posts) != 1 || posts[0].BlogName != "테크수니" {
		t.Errorf("SearchPostsByKeyword() returned %+v", posts)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestPostRepository_CountPostsByBlog(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := database.NewPostRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"blog_id", "count"}).
		AddRow(1, 12).
		AddRow(2, 3)
	mock.ExpectQuery("SELECT blog_id, COUNT").WillReturnRows(rows)

	counts, err := repo.CountPostsByBlog(context.Background())
	if err != nil {
		t.Fatalf("CountPostsByBlog() unexpected error: %v", err)
	}
	if counts[1] != 12 || counts[2] != 3 {
		t.Errorf("CountPostsByBlog() returned %v", counts)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}
