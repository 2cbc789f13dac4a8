package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/adanwillian46-design/trackflix2.0/internal/client"
	"github.com/adanwillian46-design/trackflix2.0/internal/config"
	"github.com/adanwillian46-design/trackflix2.0/internal/form"
	"github.com/adanwillian46-design/trackflix2.0/internal/model"
	"github.com/adanwillian46-design/trackflix2.0/internal/service"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
)

// 筛选按钮对应的状态
var FilterStatuses = []string{"all", "pending", "watching", "watched"}

// Handler HTTP 处理器
type Handler struct {
	Movies    *service.MovieService
	Form      *form.Controller
	API       *client.Client
	Config    *config.Config
	Templates multitemplate.Render
	StartedAt time.Time
}

// NewHandler 创建处理器，页面上的操作通过 api 调用 JSON 接口
func NewHandler(movies *service.MovieService, ctrl *form.Controller, api *client.Client, templates multitemplate.Render, cfg *config.Config) *Handler {
	return &Handler{
		Movies:    movies,
		Form:      ctrl,
		API:       api,
		Config:    cfg,
		Templates: templates,
		StartedAt: time.Now(),
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := h.baseData()
	res["Path"] = c.Request.URL.Path
	for k, v := range data {
		res[k] = v
	}
	return res
}

func (h *Handler) baseData() gin.H {
	return gin.H{
		"SiteName":     h.Config.SiteName,
		"Title":        h.Config.SiteName,
		"Path":         "/",
		"Alerts":       []string{},
		"Form":         url.Values{},
		"Filters":      FilterStatuses,
		"ActiveFilter": "all",
		"SearchQuery":  "",
	}
}

// renderPage 渲染页面到缓冲区
func (h *Handler) renderPage(name string, data gin.H) (*bytes.Buffer, error) {
	tmpl, ok := h.Templates[name]
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return &buf, nil
}

// indexData 首页数据：片单 + 调用方传入的数据
func (h *Handler) indexData(c *gin.Context, data gin.H) (gin.H, error) {
	movies, err := h.Movies.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	merged := gin.H{"Movies": movies}
	for k, v := range data {
		merged[k] = v
	}
	return h.RenderData(c, merged), nil
}

func (h *Handler) renderIndex(c *gin.Context, status int, data gin.H) {
	res, err := h.indexData(c, data)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load movies")
		return
	}
	c.HTML(status, "index.html", res)
}

// Diagnose 渲染一次首页并检查表单控制器依赖的元素
func (h *Handler) Diagnose() error {
	data := h.baseData()
	data["Movies"] = []model.Movie{}
	buf, err := h.renderPage("index.html", data)
	if err != nil {
		return err
	}
	doc, err := form.ParseHTML(buf)
	if err != nil {
		return err
	}
	h.Form.Ready(doc)
	return nil
}
