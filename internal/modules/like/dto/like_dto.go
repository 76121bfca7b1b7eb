package dto

// LikeStateResponse is the read model for any like endpoint: both values
// are derived from the edge rows at read time and can never drift from
// them.
type LikeStateResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}
