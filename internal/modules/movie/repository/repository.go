package repository

import (
	"context"

	"github.com/reelog/reelog-backend/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository interface {
	GetSnapshot(ctx context.Context, movieID int64) (*entity.MovieSnapshot, error)
	// SaveSnapshot keeps the first snapshot: a movie already captured is
	// never overwritten, so historical references keep their
	// point-in-time title/poster.
	SaveSnapshot(ctx context.Context, snapshot *entity.MovieSnapshot) error
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) GetSnapshot(ctx context.Context, movieID int64) (*entity.MovieSnapshot, error) {
	var snapshot entity.MovieSnapshot
	err := r.db.WithContext(ctx).First(&snapshot, "movie_id = ?", movieID).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *movieRepository) SaveSnapshot(ctx context.Context, snapshot *entity.MovieSnapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "movie_id"}},
			DoNothing: true,
		}).
		Create(snapshot).Error
}
