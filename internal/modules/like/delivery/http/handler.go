package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	likeService "github.com/reelog/reelog-backend/internal/modules/like/service"
	"github.com/reelog/reelog-backend/pkg/response"
)

type LikeHandler struct {
	svc likeService.LikeService
}

func NewLikeHandler(svc likeService.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

func (h *LikeHandler) LikeReview(c *gin.Context) {
	actorID, err := response.GetActorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.svc.LikeReview(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *LikeHandler) UnlikeReview(c *gin.Context) {
	actorID, err := response.GetActorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.svc.UnlikeReview(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *LikeHandler) GetReviewLikes(c *gin.Context) {
	resp, err := h.svc.GetReviewLikeState(c.Request.Context(), response.OptionalActorID(c), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *LikeHandler) LikeMovie(c *gin.Context) {
	actorID, err := response.GetActorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	resp, err := h.svc.LikeMovie(c.Request.Context(), actorID, movieID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *LikeHandler) UnlikeMovie(c *gin.Context) {
	actorID, err := response.GetActorID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	resp, err := h.svc.UnlikeMovie(c.Request.Context(), actorID, movieID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *LikeHandler) GetMovieLikes(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	resp, err := h.svc.GetMovieLikeState(c.Request.Context(), response.OptionalActorID(c), movieID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
