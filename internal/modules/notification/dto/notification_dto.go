package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/reelog/reelog-backend/internal/modules/notification/template"
)

type ListQuery struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	Quantity int `form:"quantity,default=20" binding:"min=1,max=100"`
}

// Row is one rendered feed entry. Actions (mark read, dismiss) are keyed
// by the notification id scoped to the calling recipient.
type Row struct {
	ID        uuid.UUID       `json:"id"`
	TypeName  string          `json:"type"`
	Parts     []template.Part `json:"parts"`
	Message   string          `json:"message"`
	URL       *string         `json:"url"`
	Icon      string          `json:"icon"`
	Checked   bool            `json:"checked"`
	CreatedAt time.Time       `json:"created_at"`
}

type ListResponse struct {
	UnreadCount int64 `json:"unreadCount"`
	Rows        []Row `json:"rows"`
	CurrentPage int   `json:"currentPage"`
	TotalPage   int   `json:"totalPage"`
}
