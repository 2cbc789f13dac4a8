package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/adanwillian46-design/trackflix2.0/internal/model"
	"github.com/gin-gonic/gin"
)

// debugSearchTerm 诊断页“测试搜索”使用的关键词，与测试电影标题匹配
const debugSearchTerm = "test"

// DebugResult 诊断操作的结果，Kind 为 success、error 或 info
type DebugResult struct {
	Kind string
	Text string
}

type debugAction struct {
	Name  string
	Label string
	run   func(*Handler, context.Context) DebugResult
}

// 诊断页上的 API 检查，全部经由 API 客户端
var debugActions = []debugAction{
	{Name: "ping", Label: "Test API", run: (*Handler).debugPing},
	{Name: "add", Label: "Add test movie", run: (*Handler).debugAdd},
	{Name: "list", Label: "List movies", run: (*Handler).debugList},
	{Name: "search", Label: "Test search", run: (*Handler).debugSearch},
}

// Debug 系统诊断页面
func (h *Handler) Debug(c *gin.Context) {
	h.renderDebug(c, nil)
}

// DebugAction 执行诊断页上的某个 API 检查
func (h *Handler) DebugAction(c *gin.Context) {
	name := c.Param("action")
	for _, action := range debugActions {
		if action.Name == name {
			log.Printf("[Debug] 执行诊断操作: %s", name)
			result := action.run(h, c.Request.Context())
			h.renderDebug(c, &result)
			return
		}
	}
	c.String(http.StatusNotFound, "unknown action")
}

func (h *Handler) renderDebug(c *gin.Context, result *DebugResult) {
	ctx := c.Request.Context()
	movies, err := h.Movies.List(ctx)
	if err != nil {
		log.Printf("[Debug] 读取片单失败: %v", err)
	}

	sample := movies
	if len(sample) > 3 {
		sample = sample[:3]
	}
	sampleJSON, _ := json.MarshalIndent(sample, "", "  ")

	wd, _ := os.Getwd()
	c.HTML(http.StatusOK, "debug.html", h.RenderData(c, gin.H{
		"Title":           h.Config.SiteName + " - Diagnostics",
		"WorkingDir":      wd,
		"GoVersion":       runtime.Version(),
		"Storage":         h.Config.Storage,
		"StorageLocation": h.Movies.Store().Describe(),
		"StoreError":      err,
		"TemplatesExist":  dirExists(h.Config.TemplatesDir),
		"StaticExists":    dirExists(h.Config.StaticDir),
		"MovieCount":      len(movies),
		"Sample":          string(sampleJSON),
		"Uptime":          time.Since(h.StartedAt).Round(time.Second).String(),
		"Actions":         debugActions,
		"Result":          result,
	}))
}

func (h *Handler) debugPing(ctx context.Context) DebugResult {
	start := time.Now()
	status, err := h.API.Ping(ctx)
	if err != nil {
		return DebugResult{Kind: "error", Text: "Error testing API:\n" + err.Error()}
	}
	return DebugResult{Kind: "success", Text: fmt.Sprintf(
		"API is running!\nResponse time: %dms\nStatus: %s\nMessage: %s\nMovies: %d\nTimestamp: %s",
		time.Since(start).Milliseconds(), status.Status, status.Message, status.MoviesCount, status.Timestamp)}
}

func (h *Handler) debugAdd(ctx context.Context) DebugResult {
	draft := model.MovieDraft{
		Title: "Test Movie " + time.Now().Format("15:04:05"),
		Year:  "2024",
		Type:  model.DefaultType,
		Genre: "Action",
		Notes: "Test movie created from the diagnostics page",
	}
	result, err := h.API.CreateMovie(ctx, draft)
	if err != nil {
		return DebugResult{Kind: "error", Text: "Connection error:\n" + err.Error()}
	}
	if !result.Success || result.Movie == nil {
		return DebugResult{Kind: "error", Text: "Error adding movie:\n" + result.Error}
	}
	m := result.Movie
	return DebugResult{Kind: "success", Text: fmt.Sprintf(
		"Movie added!\nID: %d\nTitle: %s\nType: %s\nDate: %s", m.ID, m.Title, m.Type, m.DateAdded)}
}

func (h *Handler) debugList(ctx context.Context) DebugResult {
	movies, err := h.API.ListMovies(ctx)
	if err != nil {
		return DebugResult{Kind: "error", Text: "Error listing movies:\n" + err.Error()}
	}
	if len(movies) == 0 {
		return DebugResult{Kind: "info", Text: "No movies found. Add a movie first."}
	}
	data, _ := json.MarshalIndent(movies, "", "  ")
	return DebugResult{Kind: "info", Text: fmt.Sprintf("Found %d movies:\n\n%s", len(movies), data)}
}

func (h *Handler) debugSearch(ctx context.Context) DebugResult {
	movies, err := h.API.SearchMovies(ctx, debugSearchTerm)
	if err != nil {
		return DebugResult{Kind: "error", Text: "Search error:\n" + err.Error()}
	}
	return DebugResult{Kind: "info", Text: fmt.Sprintf("Search for %q returned %d results", debugSearchTerm, len(movies))}
}

// QuickTest 快速测试页面
func (h *Handler) QuickTest(c *gin.Context) {
	h.renderQuickTest(c, "")
}

// RunQuickTest 调用 /api/test 并显示原始响应
func (h *Handler) RunQuickTest(c *gin.Context) {
	status, err := h.API.Ping(c.Request.Context())
	if err != nil {
		h.renderQuickTest(c, "Error: "+err.Error())
		return
	}
	data, _ := json.MarshalIndent(status, "", "  ")
	h.renderQuickTest(c, string(data))
}

func (h *Handler) renderQuickTest(c *gin.Context, result string) {
	c.HTML(http.StatusOK, "quick_test.html", h.RenderData(c, gin.H{
		"Title":       h.Config.SiteName + " - Quick test",
		"QuickResult": result,
	}))
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
