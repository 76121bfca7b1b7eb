package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/reelog/reelog-backend/internal/entity"
	likeRepo "github.com/reelog/reelog-backend/internal/modules/like/repository"
	movieDto "github.com/reelog/reelog-backend/internal/modules/movie/dto"
	reviewDto "github.com/reelog/reelog-backend/internal/modules/review/dto"
	"github.com/reelog/reelog-backend/pkg/apperror"
	"gorm.io/gorm"
)

type fakeReviewRepo struct {
	reviews  map[string]*entity.Review
	comments map[string]int64
	deleted  []string
	finds    int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:  make(map[string]*entity.Review),
		comments: make(map[string]int64),
	}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == uuid.Nil {
		var err error
		review.ID, err = uuid.NewV7()
		if err != nil {
			return err
		}
	}
	cp := *review
	f.reviews[review.ID.String()] = &cp
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	f.finds++
	r, ok := f.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	if _, ok := f.reviews[review.ID.String()]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *review
	f.reviews[review.ID.String()] = &cp
	return nil
}

func (f *fakeReviewRepo) DeleteCascade(ctx context.Context, id string) error {
	delete(f.reviews, id)
	delete(f.comments, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeReviewRepo) ListByMovie(ctx context.Context, movieID int64, page, quantity int) ([]entity.Review, error) {
	var out []entity.Review
	for _, r := range f.reviews {
		if r.MovieID == movieID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByMovie(ctx context.Context, movieID int64) (int64, error) {
	var n int64
	for _, r := range f.reviews {
		if r.MovieID == movieID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) ListByAuthor(ctx context.Context, authorID string, page, quantity int) ([]entity.Review, error) {
	var out []entity.Review
	for _, r := range f.reviews {
		if r.AuthorID == authorID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var n int64
	for _, r := range f.reviews {
		if r.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) CommentCounts(ctx context.Context, reviewIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, id := range reviewIDs {
		if n, ok := f.comments[id]; ok {
			counts[id] = n
		}
	}
	return counts, nil
}

type fakeLikeRepo struct {
	edges map[string]map[string]bool // targetID -> actorID set
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{edges: make(map[string]map[string]bool)}
}

func (f *fakeLikeRepo) GetLikeState(ctx context.Context, targetID, actorID string) (likeRepo.LikeState, error) {
	actors := f.edges[targetID]
	return likeRepo.LikeState{
		Liked: actorID != "" && actors[actorID],
		Likes: int64(len(actors)),
	}, nil
}

func (f *fakeLikeRepo) Like(ctx context.Context, targetID, actorID string) (bool, error) {
	if f.edges[targetID] == nil {
		f.edges[targetID] = make(map[string]bool)
	}
	if f.edges[targetID][actorID] {
		return false, nil
	}
	f.edges[targetID][actorID] = true
	return true, nil
}

func (f *fakeLikeRepo) Unlike(ctx context.Context, targetID, actorID string) (bool, error) {
	if !f.edges[targetID][actorID] {
		return false, nil
	}
	delete(f.edges[targetID], actorID)
	return true, nil
}

type fakeMovieService struct {
	snapshots   map[int64]*entity.MovieSnapshot
	ensureCalls int
	fail        bool
}

func newFakeMovieService() *fakeMovieService {
	return &fakeMovieService{snapshots: make(map[int64]*entity.MovieSnapshot)}
}

func (f *fakeMovieService) GetMovie(ctx context.Context, movieID int64) (*movieDto.MovieDetail, error) {
	return &movieDto.MovieDetail{ID: movieID}, nil
}

func (f *fakeMovieService) Search(ctx context.Context, clientIP, query string, page int) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (f *fakeMovieService) EnsureSnapshot(ctx context.Context, movieID int64) (*entity.MovieSnapshot, error) {
	f.ensureCalls++
	if f.fail {
		return nil, apperror.ErrNotFound
	}
	if s, ok := f.snapshots[movieID]; ok {
		return s, nil
	}
	s := &entity.MovieSnapshot{MovieID: movieID, Title: "Snapshot"}
	f.snapshots[movieID] = s
	return s, nil
}

func newTestService(t *testing.T) (ReviewService, *fakeReviewRepo, *fakeLikeRepo, *fakeMovieService) {
	t.Helper()
	repo := newFakeReviewRepo()
	likes := newFakeLikeRepo()
	movies := newFakeMovieService()
	svc := NewReviewService(repo, likes, movies, nil)
	return svc, repo, likes, movies
}

func TestCreateCapturesMovieSnapshot(t *testing.T) {
	svc, _, _, movies := newTestService(t)

	resp, err := svc.Create(context.Background(), "github_1", &reviewDto.CreateReviewRequest{
		MovieID: 42,
		Rating:  17,
		Title:   "인생 영화",
		Content: "두 번 봤다",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if movies.ensureCalls != 1 {
		t.Fatalf("snapshot ensured %d times, want 1", movies.ensureCalls)
	}
	if resp.MovieID != 42 || resp.Author.ActorID != "github_1" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Likes != 0 || resp.Liked {
		t.Fatalf("fresh review has like state %+v", resp)
	}
}

func TestCreateFailsWhenMovieUnknown(t *testing.T) {
	svc, repo, _, movies := newTestService(t)
	movies.fail = true

	_, err := svc.Create(context.Background(), "github_1", &reviewDto.CreateReviewRequest{
		MovieID: 99, Rating: 10, Title: "t", Content: "c",
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.reviews) != 0 {
		t.Fatalf("review created despite unknown movie")
	}
}

func TestUpdateRejectsNonAuthor(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "github_1", &reviewDto.CreateReviewRequest{
		MovieID: 1, Rating: 10, Title: "before", Content: "before",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "after"
	_, err = svc.Update(ctx, "kakao_2", created.ID, &reviewDto.UpdateReviewRequest{Title: &title})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// the author still can
	updated, err := svc.Update(ctx, "github_1", created.ID, &reviewDto.UpdateReviewRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update by author: %v", err)
	}
	if updated.Title != "after" || updated.Content != "before" {
		t.Fatalf("partial update result = %+v", updated)
	}
}

func TestDeleteRejectsNonAuthor(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "github_1", &reviewDto.CreateReviewRequest{
		MovieID: 1, Rating: 10, Title: "t", Content: "c",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, "google_9", created.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("cascade ran for a non-author")
	}

	if err := svc.Delete(ctx, "github_1", created.ID); err != nil {
		t.Fatalf("Delete by author: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != created.ID {
		t.Fatalf("cascade deletes = %v", repo.deleted)
	}

	if _, err := svc.GetByID(ctx, created.ID, ""); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestGetByIDDerivesEngagement(t *testing.T) {
	svc, repo, likes, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "github_1", &reviewDto.CreateReviewRequest{
		MovieID: 7, Rating: 20, Title: "t", Content: "c",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := likes.Like(ctx, created.ID, "kakao_2"); err != nil {
		t.Fatalf("Like: %v", err)
	}
	if _, err := likes.Like(ctx, created.ID, "google_3"); err != nil {
		t.Fatalf("Like: %v", err)
	}
	repo.comments[created.ID] = 4

	got, err := svc.GetByID(ctx, created.ID, "kakao_2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Likes != 2 || !got.Liked || got.Comments != 4 {
		t.Fatalf("engagement = likes %d liked %v comments %d", got.Likes, got.Liked, got.Comments)
	}

	// anonymous viewer sees counts but no liked flag
	anon, err := svc.GetByID(ctx, created.ID, "")
	if err != nil {
		t.Fatalf("GetByID anonymous: %v", err)
	}
	if anon.Likes != 2 || anon.Liked {
		t.Fatalf("anonymous engagement = %+v", anon)
	}
}

func TestMalformedReviewIDRejectedBeforeStore(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GetByID(ctx, "not-a-uuid", ""); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("GetByID: expected invalid input, got %v", err)
	}

	title := "x"
	if _, err := svc.Update(ctx, "github_1", "not-a-uuid", &reviewDto.UpdateReviewRequest{Title: &title}); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("Update: expected invalid input, got %v", err)
	}

	if err := svc.Delete(ctx, "github_1", "not-a-uuid"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("Delete: expected invalid input, got %v", err)
	}

	if repo.finds != 0 {
		t.Fatalf("store queried %d times for malformed ids", repo.finds)
	}
}
