package repository

import (
	"context"

	"github.com/reelog/reelog-backend/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeState struct {
	Liked bool
	Likes int64
}

type LikeRepository interface {
	// GetLikeState derives liked/count in one conditional-aggregation
	// query. An empty actorID (anonymous caller) always yields
	// Liked=false.
	GetLikeState(ctx context.Context, targetID, actorID string) (LikeState, error)

	// Like is an idempotent insert: a duplicate (target, actor) pair
	// creates no row and is not an error; created reports whether a new
	// edge appeared.
	Like(ctx context.Context, targetID, actorID string) (created bool, err error)

	// Unlike removes the edge when present; a missing edge is a no-op.
	Unlike(ctx context.Context, targetID, actorID string) (deleted bool, err error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) GetLikeState(ctx context.Context, targetID, actorID string) (LikeState, error) {
	var agg struct {
		Likes     int64
		LikedRows int64
	}

	err := r.db.WithContext(ctx).
		Model(&entity.LikeEdge{}).
		Select("COUNT(*) AS likes, COALESCE(SUM(CASE WHEN actor_id = ? THEN 1 ELSE 0 END), 0) AS liked_rows", actorID).
		Where("target_id = ?", targetID).
		Scan(&agg).Error
	if err != nil {
		return LikeState{}, err
	}

	return LikeState{
		Liked: agg.LikedRows > 0,
		Likes: agg.Likes,
	}, nil
}

func (r *likeRepository) Like(ctx context.Context, targetID, actorID string) (bool, error) {
	edge := &entity.LikeEdge{
		TargetID: targetID,
		ActorID:  actorID,
	}

	// insert-ignore on the (target_id, actor_id) unique index; the
	// database resolves concurrent double-submission, not the
	// application.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "target_id"}, {Name: "actor_id"}},
			DoNothing: true,
		}).
		Create(edge)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func (r *likeRepository) Unlike(ctx context.Context, targetID, actorID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("target_id = ? AND actor_id = ?", targetID, actorID).
		Delete(&entity.LikeEdge{})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
