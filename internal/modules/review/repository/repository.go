package repository

import (
	"context"

	"github.com/reelog/reelog-backend/internal/entity"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id string) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error

	// DeleteCascade removes the review together with its comments and
	// like edges in a single transaction, so no orphaned rows survive a
	// partial failure.
	DeleteCascade(ctx context.Context, id string) error

	ListByMovie(ctx context.Context, movieID int64, page, quantity int) ([]entity.Review, error)
	CountByMovie(ctx context.Context, movieID int64) (int64, error)
	ListByAuthor(ctx context.Context, authorID string, page, quantity int) ([]entity.Review, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)

	// CommentCounts aggregates comment totals for a page of reviews in
	// one grouped query. Reviews without comments are absent from the
	// result map.
	CommentCounts(ctx context.Context, reviewIDs []string) (map[string]int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	var review entity.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&review, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_id = ?", id).Delete(&entity.LikeEdge{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Review{}).Error
	})
}

func (r *reviewRepository) ListByMovie(ctx context.Context, movieID int64, page, quantity int) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Limit(quantity).
		Offset((page - 1) * quantity).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) CountByMovie(ctx context.Context, movieID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Where("movie_id = ?", movieID).
		Count(&count).Error
	return count, err
}

func (r *reviewRepository) ListByAuthor(ctx context.Context, authorID string, page, quantity int) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(quantity).
		Offset((page - 1) * quantity).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *reviewRepository) CommentCounts(ctx context.Context, reviewIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ReviewID string
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Comment{}).
		Select("review_id, COUNT(*) AS total").
		Where("review_id IN ?", reviewIDs).
		Group("review_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ReviewID] = row.Total
	}
	return counts, nil
}
