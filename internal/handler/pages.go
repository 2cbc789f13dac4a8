package handler

import (
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/adanwillian46-design/trackflix2.0/internal/form"
	"github.com/gin-gonic/gin"
)

var statusPattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

// Home 首页
func (h *Handler) Home(c *gin.Context) {
	h.renderIndex(c, http.StatusOK, gin.H{
		"Alerts": consumeFlashes(c),
	})
}

// SubmitMovie 无 JavaScript 时的表单提交入口，由表单控制器处理
func (h *Handler) SubmitMovie(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}

	doc := form.NewFormDocument(c.Request.PostForm)
	view := newPageView(c)

	_, err := h.Form.SubmitMovie(c.Request.Context(), doc, view)
	if view.reloaded {
		view.flush()
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	status := http.StatusOK
	var verr *form.ValidationError
	var rerr *form.RequestError
	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &rerr):
		status = http.StatusBadGateway
	case err != nil:
		log.Printf("[SubmitMovie] 未知错误: %v", err)
		status = http.StatusInternalServerError
	}

	// 未刷新：原样保留用户输入并显示提示
	h.renderIndex(c, status, gin.H{
		"Alerts": view.alerts,
		"Form":   c.Request.PostForm,
	})
}

// Search 搜索框提交：仅回显关键词
func (h *Handler) Search(c *gin.Context) {
	doc := form.NewFormDocument(c.Request.URL.Query())
	view := newPageView(c)
	query := h.Form.SearchMovies(doc, view)

	h.renderIndex(c, http.StatusOK, gin.H{
		"Alerts":      view.alerts,
		"SearchQuery": query,
	})
}

// Filter 筛选按钮：渲染页面后由表单控制器切换 active 状态
func (h *Handler) Filter(c *gin.Context) {
	status := c.Param("status")
	if !statusPattern.MatchString(status) {
		c.String(http.StatusNotFound, "unknown filter")
		return
	}

	data, err := h.indexData(c, nil)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load movies")
		return
	}
	buf, err := h.renderPage("index.html", data)
	if err != nil {
		log.Printf("[Filter] 渲染失败: %v", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	doc, err := form.ParseHTML(buf)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}

	var trigger form.Element
	if found := doc.Find(`.` + form.FilterButtonClass + `[data-status="` + status + `"]`); len(found) > 0 {
		trigger = found[0]
	}
	h.Form.FilterMovies(status, trigger, doc, domView{doc: doc})

	out, err := doc.HTML()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}
