package entity

import "time"

// MovieSnapshot is the denormalized (movieId, title, posterPath) captured
// the first time a review or like references the movie. It is never
// re-fetched for historical rows.
type MovieSnapshot struct {
	MovieID    int64     `gorm:"primaryKey" json:"movie_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	PosterPath string    `gorm:"size:255" json:"poster_path"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *MovieSnapshot) TableName() string {
	return "movie_snapshots"
}
