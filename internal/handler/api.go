package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/adanwillian46-design/trackflix2.0/internal/model"
	"github.com/adanwillian46-design/trackflix2.0/internal/repository"
	"github.com/adanwillian46-design/trackflix2.0/internal/service"
	"github.com/adanwillian46-design/trackflix2.0/internal/utils"
	"github.com/gin-gonic/gin"
)

// TestAPI API 自检
func (h *Handler) TestAPI(c *gin.Context) {
	count, err := h.Movies.Count(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"message":      h.Config.SiteName + " API is running!",
		"movies_count": count,
		"timestamp":    time.Now().Format(model.TimeLayout),
	})
}

// ListMovies 返回全部电影
func (h *Handler) ListMovies(c *gin.Context) {
	movies, err := h.Movies.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movies)
}

// CreateMovie 新增电影
func (h *Handler) CreateMovie(c *gin.Context) {
	var draft model.MovieDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		if errors.Is(err, io.EOF) {
			utils.BadRequest(c, "Title is required")
			return
		}
		log.Printf("[CreateMovie] 无效请求: %v", err)
		utils.BadRequest(c, "Invalid request body")
		return
	}

	movie, err := h.Movies.Create(c.Request.Context(), draft)
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		utils.BadRequest(c, "Title is required")
		return
	case errors.Is(err, service.ErrInvalidRating):
		utils.BadRequest(c, err.Error())
		return
	case err != nil:
		utils.InternalServerError(c, "Failed to save movie")
		return
	}

	utils.Success(c, gin.H{"movie": movie})
}

// UpdateRating 更新评分
func (h *Handler) UpdateRating(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	var req model.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid rating")
		return
	}

	if err := h.Movies.UpdateRating(c.Request.Context(), id, req.Rating); err != nil {
		h.mutationError(c, err)
		return
	}
	utils.Success(c, gin.H{"rating": req.Rating})
}

// UpdateStatus 更新状态
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	var req model.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid status")
		return
	}

	status, err := h.Movies.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.mutationError(c, err)
		return
	}
	utils.Success(c, gin.H{"status": status})
}

// DeleteMovie 删除电影
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	if err := h.Movies.Delete(c.Request.Context(), id); err != nil {
		h.mutationError(c, err)
		return
	}
	utils.Success(c, nil)
}

// SearchMovies 按关键词搜索
func (h *Handler) SearchMovies(c *gin.Context) {
	movies, err := h.Movies.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *Handler) mutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrMovieNotFound):
		utils.NotFound(c, "")
	case errors.Is(err, service.ErrInvalidRating):
		utils.BadRequest(c, err.Error())
	default:
		log.Printf("[API] 保存失败: %v", err)
		utils.InternalServerError(c, "Failed to save")
	}
}

func movieID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "")
		return 0, false
	}
	return id, true
}
