package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adanwillian46-design/trackflix2.0/internal/client"
	"github.com/adanwillian46-design/trackflix2.0/internal/config"
	"github.com/adanwillian46-design/trackflix2.0/internal/form"
	"github.com/adanwillian46-design/trackflix2.0/internal/handler"
	"github.com/adanwillian46-design/trackflix2.0/internal/repository"
	"github.com/adanwillian46-design/trackflix2.0/internal/router"
	"github.com/adanwillian46-design/trackflix2.0/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化存储
	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("初始化存储失败: %v", err)
	}
	defer closeStore()

	movies := service.NewMovieService(store)

	// 表单控制器通过 HTTP 调用 /api/movies
	api, err := client.NewClient(cfg.APIBaseURL)
	if err != nil {
		log.Fatalf("API 地址无效: %v", err)
	}
	api.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout})
	ctrl := form.NewController(api)

	templates, err := router.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		log.Fatalf("加载模板失败: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handler.NewHandler(movies, ctrl, api, templates, cfg)
	r := router.NewEngine(h, cfg)

	if err := h.Diagnose(); err != nil {
		log.Printf("页面自检失败: %v", err)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("🚀 %s 启动于 http://localhost:%s (存储: %s)", cfg.SiteName, cfg.Port, store.Describe())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("服务器强制关闭: %v", err)
	}

	log.Println("服务器已退出")
}

func openStore(cfg *config.Config) (repository.MovieStore, func(), error) {
	if cfg.Storage == config.StoragePostgres {
		db, err := repository.InitDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMovieRepository(db), func() { sqlDB.Close() }, nil
	}

	store, err := repository.NewFileMovieStore(cfg.MoviesFile)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}
