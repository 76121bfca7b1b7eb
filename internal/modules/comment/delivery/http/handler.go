package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	commentDto "github.com/reelog/reelog-backend/internal/modules/comment/dto"
	commentService "github.com/reelog/reelog-backend/internal/modules/comment/service"
	"github.com/reelog/reelog-backend/pkg/response"
	"github.com/reelog/reelog-backend/pkg/validator"
)

type CommentHandler struct {
	svc commentService.CommentService
}

func NewCommentHandler(svc commentService.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Create handles POST /reviews/:id/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	actorID, err := response.GetActorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req commentDto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), actorID, c.Param("id"), &req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CommentHandler) Update(c *gin.Context) {
	actorID, err := response.GetActorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req commentDto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), actorID, c.Param("commentId"), &req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	actorID, err := response.GetActorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actorID, c.Param("commentId")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// ListByReview handles GET /reviews/:id/comments.
func (h *CommentHandler) ListByReview(c *gin.Context) {
	var q commentDto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.svc.ListByReview(c.Request.Context(), c.Param("id"), q.Page, q.Quantity)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
