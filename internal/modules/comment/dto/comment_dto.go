package dto

import "time"

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=100"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=100"`
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

type CommentResponse struct {
	ID        string     `json:"id"`
	ReviewID  string     `json:"reviewId"`
	Content   string     `json:"content"`
	Author    AuthorInfo `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type ListResponse struct {
	Comments    []CommentResponse `json:"comments"`
	CurrentPage int               `json:"currentPage"`
	TotalPage   int               `json:"totalPage"`
}
