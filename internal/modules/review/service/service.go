package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"
	"github.com/reelog/reelog-backend/internal/entity"
	likeRepo "github.com/reelog/reelog-backend/internal/modules/like/repository"
	movieService "github.com/reelog/reelog-backend/internal/modules/movie/service"
	reviewDto "github.com/reelog/reelog-backend/internal/modules/review/dto"
	reviewRepo "github.com/reelog/reelog-backend/internal/modules/review/repository"
	searchService "github.com/reelog/reelog-backend/internal/modules/search/service"
	"github.com/reelog/reelog-backend/pkg/apperror"
	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, actorID string, req *reviewDto.CreateReviewRequest) (*reviewDto.ReviewResponse, error)
	GetByID(ctx context.Context, id, viewerID string) (*reviewDto.ReviewResponse, error)
	Update(ctx context.Context, actorID, id string, req *reviewDto.UpdateReviewRequest) (*reviewDto.ReviewResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	ListByMovie(ctx context.Context, movieID int64, viewerID string, page, quantity int) (*reviewDto.ListResponse, error)
	ListByAuthor(ctx context.Context, authorID, viewerID string, page, quantity int) (*reviewDto.ListResponse, error)
}

type reviewService struct {
	repo      reviewRepo.ReviewRepository
	likeRepo  likeRepo.LikeRepository
	movieSvc  movieService.MovieService
	searchSvc searchService.ReviewSearchService
}

func NewReviewService(
	repo reviewRepo.ReviewRepository,
	likes likeRepo.LikeRepository,
	movieSvc movieService.MovieService,
	searchSvc searchService.ReviewSearchService,
) ReviewService {
	return &reviewService{
		repo:      repo,
		likeRepo:  likes,
		movieSvc:  movieSvc,
		searchSvc: searchSvc,
	}
}

func (s *reviewService) Create(ctx context.Context, actorID string, req *reviewDto.CreateReviewRequest) (*reviewDto.ReviewResponse, error) {
	// the movie must resolve before a review can reference it; this also
	// captures the title/poster snapshot the feed renders from
	if _, err := s.movieSvc.EnsureSnapshot(ctx, req.MovieID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		MovieID:  req.MovieID,
		AuthorID: actorID,
		Rating:   req.Rating,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	created, err := s.repo.FindByID(ctx, review.ID.String())
	if err == nil {
		review = created
	}

	s.indexReview(review)

	return s.toResponse(ctx, review, actorID)
}

func (s *reviewService) GetByID(ctx context.Context, id, viewerID string) (*reviewDto.ReviewResponse, error) {
	review, err := s.findReview(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, review, viewerID)
}

func (s *reviewService) Update(ctx context.Context, actorID, id string, req *reviewDto.UpdateReviewRequest) (*reviewDto.ReviewResponse, error) {
	review, err := s.findReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.AuthorID != actorID {
		return nil, fmt.Errorf("only the author can edit this review: %w", apperror.ErrForbidden)
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Content != nil {
		review.Content = *req.Content
	}

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.indexReview(review)

	return s.toResponse(ctx, review, actorID)
}

func (s *reviewService) Delete(ctx context.Context, actorID, id string) error {
	review, err := s.findReview(ctx, id)
	if err != nil {
		return err
	}
	if review.AuthorID != actorID {
		return fmt.Errorf("only the author can delete this review: %w", apperror.ErrForbidden)
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if s.searchSvc != nil {
		if err := s.searchSvc.DeleteReview(id); err != nil {
			log.Printf("Failed to remove review %s from search index: %v", id, err)
		}
	}

	return nil
}

func (s *reviewService) ListByMovie(ctx context.Context, movieID int64, viewerID string, page, quantity int) (*reviewDto.ListResponse, error) {
	total, err := s.repo.CountByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListByMovie(ctx, movieID, page, quantity)
	if err != nil {
		return nil, err
	}

	return s.toListResponse(ctx, reviews, viewerID, total, page, quantity)
}

func (s *reviewService) ListByAuthor(ctx context.Context, authorID, viewerID string, page, quantity int) (*reviewDto.ListResponse, error) {
	total, err := s.repo.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.ListByAuthor(ctx, authorID, page, quantity)
	if err != nil {
		return nil, err
	}

	return s.toListResponse(ctx, reviews, viewerID, total, page, quantity)
}

func (s *reviewService) findReview(ctx context.Context, id string) (*entity.Review, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid review id: %w", apperror.ErrInvalidInput)
	}

	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) indexReview(review *entity.Review) {
	if s.searchSvc == nil {
		return
	}
	if err := s.searchSvc.IndexReview(review); err != nil {
		log.Printf("Failed to index review %s: %v", review.ID, err)
	}
}

func (s *reviewService) toResponse(ctx context.Context, review *entity.Review, viewerID string) (*reviewDto.ReviewResponse, error) {
	likeState, err := s.likeRepo.GetLikeState(ctx, review.ID.String(), viewerID)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CommentCounts(ctx, []string{review.ID.String()})
	if err != nil {
		return nil, err
	}

	resp := buildResponse(review, likeState, counts[review.ID.String()])
	return &resp, nil
}

func (s *reviewService) toListResponse(ctx context.Context, reviews []entity.Review, viewerID string, total int64, page, quantity int) (*reviewDto.ListResponse, error) {
	ids := make([]string, len(reviews))
	for i := range reviews {
		ids[i] = reviews[i].ID.String()
	}

	counts, err := s.repo.CommentCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]reviewDto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		likeState, err := s.likeRepo.GetLikeState(ctx, reviews[i].ID.String(), viewerID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, buildResponse(&reviews[i], likeState, counts[reviews[i].ID.String()]))
	}

	return &reviewDto.ListResponse{
		Reviews:     rows,
		CurrentPage: page,
		TotalPage:   int(math.Ceil(float64(total) / float64(quantity))),
	}, nil
}

func buildResponse(review *entity.Review, likeState likeRepo.LikeState, comments int64) reviewDto.ReviewResponse {
	author := reviewDto.AuthorInfo{ActorID: review.AuthorID}
	if review.Author != nil {
		author.Username = review.Author.Username
		if review.Author.IconURL != nil {
			author.IconURL = *review.Author.IconURL
		}
	}

	return reviewDto.ReviewResponse{
		ID:        review.ID.String(),
		MovieID:   review.MovieID,
		Rating:    review.Rating,
		Title:     review.Title,
		Content:   review.Content,
		Author:    author,
		Likes:     likeState.Likes,
		Liked:     likeState.Liked,
		Comments:  comments,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
