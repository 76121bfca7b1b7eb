package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is stored doubled so half points stay integral (0..20 for 0..10).
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MovieID   int64     `gorm:"not null;index" json:"movie_id"`
	AuthorID  string    `gorm:"size:120;not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;references:ActorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Content   string    `gorm:"size:200;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewID  uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	Review    *Review   `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  string    `gorm:"size:120;not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;references:ActorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Content   string    `gorm:"size:100;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
