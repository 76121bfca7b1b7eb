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
	notifDto "github.com/reelog/reelog-backend/internal/modules/notification/dto"
	notifService "github.com/reelog/reelog-backend/internal/modules/notification/service"
	"github.com/reelog/reelog-backend/pkg/apperror"
	"gorm.io/gorm"
)

type memLikeRepo struct {
	edges map[string]map[string]bool
}

func newMemLikeRepo() *memLikeRepo {
	return &memLikeRepo{edges: make(map[string]map[string]bool)}
}

func (m *memLikeRepo) GetLikeState(ctx context.Context, targetID, actorID string) (likeRepo.LikeState, error) {
	actors := m.edges[targetID]
	return likeRepo.LikeState{
		Liked: actorID != "" && actors[actorID],
		Likes: int64(len(actors)),
	}, nil
}

func (m *memLikeRepo) Like(ctx context.Context, targetID, actorID string) (bool, error) {
	if m.edges[targetID] == nil {
		m.edges[targetID] = make(map[string]bool)
	}
	if m.edges[targetID][actorID] {
		return false, nil
	}
	m.edges[targetID][actorID] = true
	return true, nil
}

func (m *memLikeRepo) Unlike(ctx context.Context, targetID, actorID string) (bool, error) {
	if !m.edges[targetID][actorID] {
		return false, nil
	}
	delete(m.edges[targetID], actorID)
	return true, nil
}

type singleReviewRepo struct {
	review *entity.Review
}

func (f *singleReviewRepo) Create(ctx context.Context, review *entity.Review) error { return nil }

func (f *singleReviewRepo) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	if f.review != nil && f.review.ID.String() == id {
		cp := *f.review
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *singleReviewRepo) Update(ctx context.Context, review *entity.Review) error { return nil }
func (f *singleReviewRepo) DeleteCascade(ctx context.Context, id string) error      { return nil }

func (f *singleReviewRepo) ListByMovie(ctx context.Context, movieID int64, page, quantity int) ([]entity.Review, error) {
	return nil, nil
}

func (f *singleReviewRepo) CountByMovie(ctx context.Context, movieID int64) (int64, error) {
	return 0, nil
}

func (f *singleReviewRepo) ListByAuthor(ctx context.Context, authorID string, page, quantity int) ([]entity.Review, error) {
	return nil, nil
}

func (f *singleReviewRepo) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	return 0, nil
}

func (f *singleReviewRepo) CommentCounts(ctx context.Context, reviewIDs []string) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type memUserRepo struct {
	users map[string]*entity.User
}

func (m *memUserRepo) FindByActorID(ctx context.Context, actorID string) (*entity.User, error) {
	u, ok := m.users[actorID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *memUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	m.users[user.ActorID] = user
	return nil
}

type recordingNotifier struct {
	payloads   []notifService.Payload
	recipients [][]string
}

func (r *recordingNotifier) Notify(ctx context.Context, payload notifService.Payload, recipientIDs []string) error {
	r.payloads = append(r.payloads, payload)
	r.recipients = append(r.recipients, recipientIDs)
	return nil
}

func (r *recordingNotifier) List(ctx context.Context, recipientID string, page, quantity int) (*notifDto.ListResponse, error) {
	return nil, nil
}

func (r *recordingNotifier) MarkOneRead(ctx context.Context, notificationID uuid.UUID, recipientID string) error {
	return nil
}

func (r *recordingNotifier) MarkAllRead(ctx context.Context, recipientID string) error { return nil }

func (r *recordingNotifier) Delete(ctx context.Context, notificationID uuid.UUID, recipientID string) error {
	return nil
}

type stubMovieService struct {
	ensureCalls int
	fail        bool
}

func (s *stubMovieService) GetMovie(ctx context.Context, movieID int64) (*movieDto.MovieDetail, error) {
	return &movieDto.MovieDetail{ID: movieID}, nil
}

func (s *stubMovieService) Search(ctx context.Context, clientIP, query string, page int) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (s *stubMovieService) EnsureSnapshot(ctx context.Context, movieID int64) (*entity.MovieSnapshot, error) {
	s.ensureCalls++
	if s.fail {
		return nil, apperror.ErrNotFound
	}
	return &entity.MovieSnapshot{MovieID: movieID}, nil
}

func newTestLikeService(t *testing.T, review *entity.Review) (LikeService, *memLikeRepo, *recordingNotifier, *memUserRepo, *stubMovieService) {
	t.Helper()
	repo := newMemLikeRepo()
	users := &memUserRepo{users: map[string]*entity.User{}}
	notifier := &recordingNotifier{}
	movies := &stubMovieService{}
	svc := NewLikeService(repo, &singleReviewRepo{review: review}, users, movies, notifier)
	return svc, repo, notifier, users, movies
}

func testReview(t *testing.T, authorID string, movieID int64) *entity.Review {
	t.Helper()
	id, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	return &entity.Review{ID: id, AuthorID: authorID, MovieID: movieID}
}

func TestLikeReviewIdempotentNotification(t *testing.T) {
	review := testReview(t, "github_author", 42)
	svc, _, notifier, users, _ := newTestLikeService(t, review)
	users.users["kakao_bob"] = &entity.User{ActorID: "kakao_bob", Username: "bob"}
	ctx := context.Background()

	st, err := svc.LikeReview(ctx, "kakao_bob", review.ID.String())
	if err != nil {
		t.Fatalf("LikeReview: %v", err)
	}
	if !st.Liked || st.Likes != 1 {
		t.Fatalf("state after like = %+v", st)
	}

	// liking again: same state, no second notification
	st, err = svc.LikeReview(ctx, "kakao_bob", review.ID.String())
	if err != nil {
		t.Fatalf("LikeReview repeat: %v", err)
	}
	if !st.Liked || st.Likes != 1 {
		t.Fatalf("state after repeat like = %+v", st)
	}

	if len(notifier.payloads) != 1 {
		t.Fatalf("notifications sent = %d, want 1", len(notifier.payloads))
	}
	payload, ok := notifier.payloads[0].(notifService.ReviewLikePayload)
	if !ok {
		t.Fatalf("payload type = %T", notifier.payloads[0])
	}
	if payload.Username != "bob" || payload.MovieID != 42 {
		t.Fatalf("payload = %+v", payload)
	}
	if notifier.recipients[0][0] != "github_author" {
		t.Fatalf("recipients = %v", notifier.recipients[0])
	}
}

func TestLikeOwnReviewStaysSilent(t *testing.T) {
	review := testReview(t, "github_author", 42)
	svc, _, notifier, users, _ := newTestLikeService(t, review)
	users.users["github_author"] = &entity.User{ActorID: "github_author", Username: "alice"}

	st, err := svc.LikeReview(context.Background(), "github_author", review.ID.String())
	if err != nil {
		t.Fatalf("LikeReview: %v", err)
	}
	if !st.Liked || st.Likes != 1 {
		t.Fatalf("state = %+v", st)
	}
	if len(notifier.payloads) != 0 {
		t.Fatalf("self-like notified the author")
	}
}

func TestUnlikeReview(t *testing.T) {
	review := testReview(t, "github_author", 42)
	svc, _, _, users, _ := newTestLikeService(t, review)
	users.users["kakao_bob"] = &entity.User{ActorID: "kakao_bob", Username: "bob"}
	ctx := context.Background()

	if _, err := svc.LikeReview(ctx, "kakao_bob", review.ID.String()); err != nil {
		t.Fatalf("LikeReview: %v", err)
	}

	st, err := svc.UnlikeReview(ctx, "kakao_bob", review.ID.String())
	if err != nil {
		t.Fatalf("UnlikeReview: %v", err)
	}
	if st.Liked || st.Likes != 0 {
		t.Fatalf("state after unlike = %+v", st)
	}

	// removing an absent edge is a quiet no-op
	st, err = svc.UnlikeReview(ctx, "kakao_bob", review.ID.String())
	if err != nil {
		t.Fatalf("UnlikeReview repeat: %v", err)
	}
	if st.Liked || st.Likes != 0 {
		t.Fatalf("state after repeat unlike = %+v", st)
	}
}

func TestLikeReviewNotFound(t *testing.T) {
	review := testReview(t, "github_author", 42)
	svc, _, _, _, _ := newTestLikeService(t, review)

	other, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	if _, err := svc.LikeReview(context.Background(), "kakao_bob", other.String()); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLikeMoviePinsSnapshot(t *testing.T) {
	svc, repo, notifier, _, movies := newTestLikeService(t, nil)
	ctx := context.Background()

	st, err := svc.LikeMovie(ctx, "github_1", 603)
	if err != nil {
		t.Fatalf("LikeMovie: %v", err)
	}
	if !st.Liked || st.Likes != 1 {
		t.Fatalf("state = %+v", st)
	}
	if movies.ensureCalls != 1 {
		t.Fatalf("snapshot ensured %d times, want 1", movies.ensureCalls)
	}
	if len(notifier.payloads) != 0 {
		t.Fatalf("movie like produced a notification")
	}

	// movie and review edges share the table but never a target id
	if _, ok := repo.edges[entity.MovieTargetID(603)]; !ok {
		t.Fatalf("edge stored under %v, want movie namespace", repo.edges)
	}

	st, err = svc.UnlikeMovie(ctx, "github_1", 603)
	if err != nil {
		t.Fatalf("UnlikeMovie: %v", err)
	}
	if st.Liked || st.Likes != 0 {
		t.Fatalf("state after unlike = %+v", st)
	}
}

func TestLikeMovieUnknownMovie(t *testing.T) {
	svc, repo, _, _, movies := newTestLikeService(t, nil)
	movies.fail = true

	if _, err := svc.LikeMovie(context.Background(), "github_1", 999); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.edges) != 0 {
		t.Fatalf("edge created for unknown movie")
	}
}

func TestMalformedReviewIDRejectedBeforeEdgeWrite(t *testing.T) {
	review := testReview(t, "github_author", 42)
	svc, repo, notifier, _, _ := newTestLikeService(t, review)
	ctx := context.Background()

	if _, err := svc.LikeReview(ctx, "kakao_bob", "abc"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("LikeReview: expected invalid input, got %v", err)
	}
	if _, err := svc.UnlikeReview(ctx, "kakao_bob", "abc"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("UnlikeReview: expected invalid input, got %v", err)
	}
	if _, err := svc.GetReviewLikeState(ctx, "", "abc"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("GetReviewLikeState: expected invalid input, got %v", err)
	}

	if len(repo.edges) != 0 {
		t.Fatalf("edges written for a malformed id: %v", repo.edges)
	}
	if len(notifier.payloads) != 0 {
		t.Fatalf("notification sent for a malformed id")
	}
}
