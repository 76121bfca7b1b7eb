package repository

import (
	"context"

	"github.com/reelog/reelog-backend/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	FindByActorID(ctx context.Context, actorID string) (*entity.User, error)
	// Upsert inserts the user on first sign-in and refreshes the
	// mutable profile fields (username, icon) on every later one.
	Upsert(ctx context.Context, user *entity.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByActorID(ctx context.Context, actorID string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "actor_id = ?", actorID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "icon_url", "updated_at"}),
		}).
		Create(user).Error
}
