package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeEdge records "actor likes target". Review targets use the review
// uuid string; movie targets are namespaced as "movie:<id>" so both kinds
// share one (target_id, actor_id) uniqueness invariant. Liked state and
// counts are always derived from these rows, never stored.
type LikeEdge struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TargetID  string    `gorm:"size:120;not null;uniqueIndex:idx_like_edges_target_actor,priority:1" json:"target_id"`
	ActorID   string    `gorm:"size:120;not null;uniqueIndex:idx_like_edges_target_actor,priority:2" json:"actor_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *LikeEdge) TableName() string {
	return "like_edges"
}

func (l *LikeEdge) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}

// MovieTargetID builds the edge target id for a movie-level like.
func MovieTargetID(movieID int64) string {
	return fmt.Sprintf("movie:%d", movieID)
}
