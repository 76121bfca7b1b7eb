package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	searchService "github.com/reelog/reelog-backend/internal/modules/search/service"
	"github.com/reelog/reelog-backend/pkg/response"
	"github.com/reelog/reelog-backend/pkg/validator"
)

type SearchHandler struct {
	svc searchService.ReviewSearchService
}

func NewSearchHandler(svc searchService.ReviewSearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

type searchQuery struct {
	Query    string `form:"q" binding:"required,min=1"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	Quantity int    `form:"quantity,default=20" binding:"min=1,max=100"`
}

// SearchReviews handles GET /search/reviews.
func (h *SearchHandler) SearchReviews(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.svc.Search(q.Query, q.Page, q.Quantity)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
