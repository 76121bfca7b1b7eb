package dto

import "time"

type CreateReviewRequest struct {
	MovieID int64  `json:"movieId" binding:"required"`
	Rating  int    `json:"rating" binding:"min=0,max=20"`
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required,max=200"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=0,max=20"`
	Title   *string `json:"title" binding:"omitempty,max=100"`
	Content *string `json:"content" binding:"omitempty,max=200"`
}

type ListQuery struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	Quantity int `form:"quantity,default=20" binding:"min=1,max=100"`
}

type AuthorInfo struct {
	ActorID  string `json:"actorId"`
	Username string `json:"username"`
	IconURL  string `json:"iconUrl,omitempty"`
}

type ReviewResponse struct {
	ID        string     `json:"id"`
	MovieID   int64      `json:"movieId"`
	Rating    int        `json:"rating"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    AuthorInfo `json:"author"`
	Likes     int64      `json:"likes"`
	Liked     bool       `json:"liked"`
	Comments  int64      `json:"comments"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type ListResponse struct {
	Reviews     []ReviewResponse `json:"reviews"`
	CurrentPage int              `json:"currentPage"`
	TotalPage   int              `json:"totalPage"`
}
