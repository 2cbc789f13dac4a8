package router

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/adanwillian46-design/trackflix2.0/internal/config"
	"github.com/adanwillian46-design/trackflix2.0/internal/handler"
	"github.com/adanwillian46-design/trackflix2.0/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Pages 所有页面模板
var Pages = []string{"index", "debug", "quick_test"}

// NewEngine 组装 Gin：压缩、Session、模板、静态文件、中间件与路由
func NewEngine(h *handler.Handler, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Session 用于页面提示（flash）
	store := cookie.NewStore([]byte(cfg.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("trackflix", store))

	r.HTMLRender = h.Templates

	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		r.Static("/static", cfg.StaticDir)
	}

	r.Use(middleware.Logger())
	r.Use(middleware.Security())
	r.Use(middleware.CORS())

	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 页面 ====================
	r.GET("/", h.Home)
	r.POST("/movies", h.SubmitMovie)
	r.GET("/search", h.Search)
	r.GET("/filter/:status", h.Filter)
	r.POST("/movies/:id/rating", h.RateMovie)
	r.POST("/movies/:id/status", h.SetMovieStatus)
	r.POST("/movies/:id/delete", h.RemoveMovie)
	r.GET("/debug", h.Debug)
	r.POST("/debug/:action", h.DebugAction)
	r.GET("/quick-test", h.QuickTest)
	r.POST("/quick-test", h.RunQuickTest)

	// ==================== JSON API ====================
	api := r.Group("/api")
	{
		api.GET("/test", h.TestAPI)
		api.GET("/movies", h.ListMovies)
		api.POST("/movies", h.CreateMovie)
		api.PUT("/movies/:id/rating", h.UpdateRating)
		api.PUT("/movies/:id/status", h.UpdateStatus)
		api.DELETE("/movies/:id", h.DeleteMovie)
		api.GET("/search", h.SearchMovies)
	}
}

// LoadTemplates 使用 multitemplate 加载模板：layouts + partials + 页面
func LoadTemplates(templatesDir string) (multitemplate.Render, error) {
	r := multitemplate.New()

	layouts, err := filepath.Glob(filepath.Join(templatesDir, "layouts", "*.html"))
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts found in %s", templatesDir)
	}
	partials, err := filepath.Glob(filepath.Join(templatesDir, "partials", "*.html"))
	if err != nil {
		return nil, err
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(partials)+1)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 模板函数
	funcMap := template.FuncMap{
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case float64:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
		"list": func(items ...string) []string {
			return items
		},
	}

	for _, page := range Pages {
		viewPath := filepath.Join(templatesDir, "pages", page+".html")
		if _, err := os.Stat(viewPath); err != nil {
			return nil, fmt.Errorf("template %s: %w", page, err)
		}
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r, nil
}
