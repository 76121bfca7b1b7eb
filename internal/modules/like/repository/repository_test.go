package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLikeIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	// First call inserts a new edge.
	mock.ExpectExec("INSERT INTO `like_edges`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Like(ctx, "review-1", "github_2")
	if err != nil {
		t.Fatalf("Like 1: %v", err)
	}
	if !created {
		t.Fatalf("first like should create an edge")
	}

	// Second call hits the unique index: no row, no error.
	mock.ExpectExec("INSERT INTO `like_edges`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err = repo.Like(ctx, "review-1", "github_2")
	if err != nil {
		t.Fatalf("Like 2: %v", err)
	}
	if created {
		t.Fatalf("duplicate like must not create a second edge")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUnlikeMissingEdgeIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectExec("DELETE FROM `like_edges`").
		WithArgs("review-1", "github_2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Unlike(context.Background(), "review-1", "github_2")
	if err != nil {
		t.Fatalf("Unlike on absent edge must not error: %v", err)
	}
	if deleted {
		t.Fatalf("nothing should have been deleted")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUnlikeRemovesEdge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectExec("DELETE FROM `like_edges`").
		WithArgs("review-1", "github_2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Unlike(context.Background(), "review-1", "github_2")
	if err != nil {
		t.Fatalf("Unlike: %v", err)
	}
	if !deleted {
		t.Fatalf("edge should have been deleted")
	}
}

func TestGetLikeState(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) AS likes, COALESCE").
		WithArgs("github_2", "review-1").
		WillReturnRows(sqlmock.NewRows([]string{"likes", "liked_rows"}).AddRow(3, 1))

	state, err := repo.GetLikeState(context.Background(), "review-1", "github_2")
	if err != nil {
		t.Fatalf("GetLikeState: %v", err)
	}
	if !state.Liked {
		t.Fatalf("expected liked=true")
	}
	if state.Likes != 3 {
		t.Fatalf("likes = %d, want 3", state.Likes)
	}
}

func TestGetLikeStateAnonymous(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLikeRepository(db)

	// An anonymous caller has no actor id; no edge can ever match it.
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) AS likes, COALESCE").
		WithArgs("", "review-1").
		WillReturnRows(sqlmock.NewRows([]string{"likes", "liked_rows"}).AddRow(3, 0))

	state, err := repo.GetLikeState(context.Background(), "review-1", "")
	if err != nil {
		t.Fatalf("GetLikeState: %v", err)
	}
	if state.Liked {
		t.Fatalf("anonymous caller can never be liked=true")
	}
	if state.Likes != 3 {
		t.Fatalf("likes = %d, want 3", state.Likes)
	}
}
