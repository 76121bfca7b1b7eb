package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"
	"github.com/reelog/reelog-backend/internal/entity"
	commentDto "github.com/reelog/reelog-backend/internal/modules/comment/dto"
	commentRepo "github.com/reelog/reelog-backend/internal/modules/comment/repository"
	notifService "github.com/reelog/reelog-backend/internal/modules/notification/service"
	reviewRepo "github.com/reelog/reelog-backend/internal/modules/review/repository"
	userRepo "github.com/reelog/reelog-backend/internal/modules/user/repository"
	"github.com/reelog/reelog-backend/pkg/apperror"
	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, actorID, reviewID string, req *commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error)
	Update(ctx context.Context, actorID, id string, req *commentDto.UpdateCommentRequest) (*commentDto.CommentResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	ListByReview(ctx context.Context, reviewID string, page, quantity int) (*commentDto.ListResponse, error)
}

type commentService struct {
	repo     commentRepo.CommentRepository
	reviews  reviewRepo.ReviewRepository
	users    userRepo.UserRepository
	notifSvc notifService.NotificationService
}

func NewCommentService(
	repo commentRepo.CommentRepository,
	reviews reviewRepo.ReviewRepository,
	users userRepo.UserRepository,
	notifSvc notifService.NotificationService,
) CommentService {
	return &commentService{
		repo:     repo,
		reviews:  reviews,
		users:    users,
		notifSvc: notifSvc,
	}
}

func (s *commentService) Create(ctx context.Context, actorID, reviewID string, req *commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error) {
	rid, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review id: %w", apperror.ErrInvalidInput)
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	comment := &entity.Comment{
		ReviewID: rid,
		AuthorID: actorID,
		Content:  req.Content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// notify the review author after the comment is durable; a
	// notification failure never unwinds the comment itself
	s.notifyReviewAuthor(ctx, review, actorID)

	if created, err := s.repo.FindByID(ctx, comment.ID.String()); err == nil {
		comment = created
	}

	resp := toResponse(comment)
	return &resp, nil
}

func (s *commentService) notifyReviewAuthor(ctx context.Context, review *entity.Review, commenterID string) {
	// commenting on your own review makes no noise
	if review.AuthorID == commenterID {
		return
	}

	commenter, err := s.users.FindByActorID(ctx, commenterID)
	if err != nil {
		log.Printf("Skipping comment notification, commenter %s lookup failed: %v", commenterID, err)
		return
	}

	payload := notifService.ReviewCommentPayload{
		Username: commenter.Username,
		MovieID:  review.MovieID,
	}
	if commenter.IconURL != nil {
		payload.Icon = *commenter.IconURL
	}

	if err := s.notifSvc.Notify(ctx, payload, []string{review.AuthorID}); err != nil {
		log.Printf("Failed to notify %s about a new comment: %v", review.AuthorID, err)
	}
}

func (s *commentService) Update(ctx context.Context, actorID, id string, req *commentDto.UpdateCommentRequest) (*commentDto.CommentResponse, error) {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, fmt.Errorf("only the author can edit this comment: %w", apperror.ErrForbidden)
	}

	comment.Content = req.Content
	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	resp := toResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, actorID, id string) error {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		return fmt.Errorf("only the author can delete this comment: %w", apperror.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *commentService) ListByReview(ctx context.Context, reviewID string, page, quantity int) (*commentDto.ListResponse, error) {
	if _, err := uuid.Parse(reviewID); err != nil {
		return nil, fmt.Errorf("invalid review id: %w", apperror.ErrInvalidInput)
	}

	total, err := s.repo.CountByReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByReview(ctx, reviewID, page, quantity)
	if err != nil {
		return nil, err
	}

	rows := make([]commentDto.CommentResponse, 0, len(comments))
	for i := range comments {
		rows = append(rows, toResponse(&comments[i]))
	}

	return &commentDto.ListResponse{
		Comments:    rows,
		CurrentPage: page,
		TotalPage:   int(math.Ceil(float64(total) / float64(quantity))),
	}, nil
}

func (s *commentService) findComment(ctx context.Context, id string) (*entity.Comment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid comment id: %w", apperror.ErrInvalidInput)
	}

	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return comment, nil
}

func toResponse(comment *entity.Comment) commentDto.CommentResponse {
	author := commentDto.AuthorInfo{ActorID: comment.AuthorID}
	if comment.Author != nil {
		author.Username = comment.Author.Username
		if comment.Author.IconURL != nil {
			author.IconURL = *comment.Author.IconURL
		}
	}

	return commentDto.CommentResponse{
		ID:        comment.ID.String(),
		ReviewID:  comment.ReviewID.String(),
		Content:   comment.Content,
		Author:    author,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
