package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/reelog/reelog-backend/internal/entity"
	likeDto "github.com/reelog/reelog-backend/internal/modules/like/dto"
	likeRepo "github.com/reelog/reelog-backend/internal/modules/like/repository"
	movieService "github.com/reelog/reelog-backend/internal/modules/movie/service"
	notifService "github.com/reelog/reelog-backend/internal/modules/notification/service"
	reviewRepo "github.com/reelog/reelog-backend/internal/modules/review/repository"
	userRepo "github.com/reelog/reelog-backend/internal/modules/user/repository"
	"github.com/reelog/reelog-backend/pkg/apperror"
	"gorm.io/gorm"
)

type LikeService interface {
	// LikeReview is idempotent: repeating it changes nothing and is not
	// an error. The first like of someone else's review notifies its
	// author.
	LikeReview(ctx context.Context, actorID, reviewID string) (*likeDto.LikeStateResponse, error)
	UnlikeReview(ctx context.Context, actorID, reviewID string) (*likeDto.LikeStateResponse, error)
	GetReviewLikeState(ctx context.Context, viewerID, reviewID string) (*likeDto.LikeStateResponse, error)

	LikeMovie(ctx context.Context, actorID string, movieID int64) (*likeDto.LikeStateResponse, error)
	UnlikeMovie(ctx context.Context, actorID string, movieID int64) (*likeDto.LikeStateResponse, error)
	GetMovieLikeState(ctx context.Context, viewerID string, movieID int64) (*likeDto.LikeStateResponse, error)
}

type likeService struct {
	repo     likeRepo.LikeRepository
	reviews  reviewRepo.ReviewRepository
	users    userRepo.UserRepository
	movieSvc movieService.MovieService
	notifSvc notifService.NotificationService
}

func NewLikeService(
	repo likeRepo.LikeRepository,
	reviews reviewRepo.ReviewRepository,
	users userRepo.UserRepository,
	movieSvc movieService.MovieService,
	notifSvc notifService.NotificationService,
) LikeService {
	return &likeService{
		repo:     repo,
		reviews:  reviews,
		users:    users,
		movieSvc: movieSvc,
		notifSvc: notifSvc,
	}
}

func (s *likeService) LikeReview(ctx context.Context, actorID, reviewID string) (*likeDto.LikeStateResponse, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Like(ctx, reviewID, actorID)
	if err != nil {
		return nil, fmt.Errorf("like review: %w", err)
	}

	// only a fresh edge makes noise; re-likes and self-likes stay silent
	if created && review.AuthorID != actorID {
		s.notifyReviewAuthor(ctx, review, actorID)
	}

	return s.state(ctx, reviewID, actorID)
}

func (s *likeService) UnlikeReview(ctx context.Context, actorID, reviewID string) (*likeDto.LikeStateResponse, error) {
	if _, err := s.findReview(ctx, reviewID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Unlike(ctx, reviewID, actorID); err != nil {
		return nil, fmt.Errorf("unlike review: %w", err)
	}

	return s.state(ctx, reviewID, actorID)
}

func (s *likeService) GetReviewLikeState(ctx context.Context, viewerID, reviewID string) (*likeDto.LikeStateResponse, error) {
	if _, err := s.findReview(ctx, reviewID); err != nil {
		return nil, err
	}
	return s.state(ctx, reviewID, viewerID)
}

func (s *likeService) LikeMovie(ctx context.Context, actorID string, movieID int64) (*likeDto.LikeStateResponse, error) {
	// liking a movie pins its snapshot, same as reviewing it
	if _, err := s.movieSvc.EnsureSnapshot(ctx, movieID); err != nil {
		return nil, err
	}

	target := entity.MovieTargetID(movieID)
	if _, err := s.repo.Like(ctx, target, actorID); err != nil {
		return nil, fmt.Errorf("like movie: %w", err)
	}

	return s.state(ctx, target, actorID)
}

func (s *likeService) UnlikeMovie(ctx context.Context, actorID string, movieID int64) (*likeDto.LikeStateResponse, error) {
	target := entity.MovieTargetID(movieID)
	if _, err := s.repo.Unlike(ctx, target, actorID); err != nil {
		return nil, fmt.Errorf("unlike movie: %w", err)
	}
	return s.state(ctx, target, actorID)
}

func (s *likeService) GetMovieLikeState(ctx context.Context, viewerID string, movieID int64) (*likeDto.LikeStateResponse, error) {
	return s.state(ctx, entity.MovieTargetID(movieID), viewerID)
}

func (s *likeService) notifyReviewAuthor(ctx context.Context, review *entity.Review, likerID string) {
	liker, err := s.users.FindByActorID(ctx, likerID)
	if err != nil {
		log.Printf("Skipping like notification, liker %s lookup failed: %v", likerID, err)
		return
	}

	payload := notifService.ReviewLikePayload{
		Username: liker.Username,
		MovieID:  review.MovieID,
	}
	if liker.IconURL != nil {
		payload.Icon = *liker.IconURL
	}

	if err := s.notifSvc.Notify(ctx, payload, []string{review.AuthorID}); err != nil {
		log.Printf("Failed to notify %s about a new like: %v", review.AuthorID, err)
	}
}

func (s *likeService) findReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	if _, err := uuid.Parse(reviewID); err != nil {
		return nil, fmt.Errorf("invalid review id: %w", apperror.ErrInvalidInput)
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return review, nil
}

func (s *likeService) state(ctx context.Context, targetID, viewerID string) (*likeDto.LikeStateResponse, error) {
	st, err := s.repo.GetLikeState(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}
	return &likeDto.LikeStateResponse{Liked: st.Liked, Likes: st.Likes}, nil
}
