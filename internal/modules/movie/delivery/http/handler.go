package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	movieDto "github.com/reelog/reelog-backend/internal/modules/movie/dto"
	movieService "github.com/reelog/reelog-backend/internal/modules/movie/service"
	"github.com/reelog/reelog-backend/pkg/apperror"
	"github.com/reelog/reelog-backend/pkg/response"
	"github.com/reelog/reelog-backend/pkg/validator"
)

type MovieHandler struct {
	service movieService.MovieService
}

func NewMovieHandler(service movieService.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

func (h *MovieHandler) GetMovie(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "invalid movie id", apperror.ErrInvalidInput))
		return
	}

	detail, err := h.service.GetMovie(c.Request.Context(), movieID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *MovieHandler) Search(c *gin.Context) {
	var q movieDto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	body, err := h.service.Search(c.Request.Context(), c.ClientIP(), q.Query, q.Page)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
