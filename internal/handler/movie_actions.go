package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/adanwillian46-design/trackflix2.0/internal/client"
	"github.com/adanwillian46-design/trackflix2.0/internal/form"
	"github.com/gin-gonic/gin"
)

// 卡片操作的提示文案
const (
	MsgRatingUpdated = "Rating updated"
	MsgStatusUpdated = "Status updated"
	MsgMovieDeleted  = "Movie deleted"
	msgInvalidRating = "Error: Invalid rating"
)

// RateMovie 卡片上的评分表单
func (h *Handler) RateMovie(c *gin.Context) {
	id, ok := pageMovieID(c)
	if !ok {
		return
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("rating")), 64)
	if err != nil {
		h.redirectWithAlert(c, msgInvalidRating)
		return
	}
	h.finishAction(c, MsgRatingUpdated, h.API.UpdateRating(c.Request.Context(), id, rating))
}

// SetMovieStatus 卡片上的状态表单
func (h *Handler) SetMovieStatus(c *gin.Context) {
	id, ok := pageMovieID(c)
	if !ok {
		return
	}
	h.finishAction(c, MsgStatusUpdated, h.API.UpdateStatus(c.Request.Context(), id, c.PostForm("status")))
}

// RemoveMovie 卡片上的删除按钮
func (h *Handler) RemoveMovie(c *gin.Context) {
	id, ok := pageMovieID(c)
	if !ok {
		return
	}
	h.finishAction(c, MsgMovieDeleted, h.API.DeleteMovie(c.Request.Context(), id))
}

// finishAction 把接口结果转成提示，然后回到首页
func (h *Handler) finishAction(c *gin.Context, done string, err error) {
	var apiErr *client.APIError
	switch {
	case err == nil:
		h.redirectWithAlert(c, done)
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = form.MsgUnknownError
		}
		h.redirectWithAlert(c, "Error: "+msg)
	default:
		log.Printf("[MovieAction] 请求失败: %v", err)
		h.redirectWithAlert(c, form.MsgConnection)
	}
}

func (h *Handler) redirectWithAlert(c *gin.Context, message string) {
	view := newPageView(c)
	view.Alert(message)
	view.flush()
	c.Redirect(http.StatusSeeOther, "/")
}

func pageMovieID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "movie not found")
		return 0, false
	}
	return id, true
}
