package dto

// MovieDetail is what the metadata collaborator hands back for one
// movie id. Only (id, title, posterPath) is ever persisted, as a
// point-in-time snapshot.
type MovieDetail struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	PosterPath  string   `json:"poster_path"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"release_date"`
	Genres      []string `json:"genres"`
	Cast        []string `json:"cast"`
}

type SearchQuery struct {
	Query string `form:"query" binding:"required,min=1"`
	Page  int    `form:"page,default=1" binding:"min=1"`
}
