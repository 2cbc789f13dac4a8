package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// 存储驱动
const (
	StorageJSON     = "json"
	StoragePostgres = "postgres"
)

const (
	defaultConfigPath = "trackflix.toml"
	defaultSecret     = "your-secret-key-change-in-production"
	defaultAPITimeout = "15s"
)

// Config 应用配置
type Config struct {
	Env          string
	AppSecret    string
	Port         string
	Storage      string
	MoviesFile   string
	DatabaseURL  string
	APIBaseURL   string
	APITimeout   time.Duration
	TemplatesDir string
	StaticDir    string
	SiteName     string
}

// fileConfig trackflix.toml 的结构，所有字段可选
type fileConfig struct {
	Env          string `toml:"env"`
	Port         string `toml:"port"`
	Storage      string `toml:"storage"`
	MoviesFile   string `toml:"movies_file"`
	APIBaseURL   string `toml:"api_base_url"`
	APITimeout   string `toml:"api_timeout"`
	TemplatesDir string `toml:"templates_dir"`
	StaticDir    string `toml:"static_dir"`
	SiteName     string `toml:"site_name"`
	Database     struct {
		User     string `toml:"user"`
		Password string `toml:"password"`
		Host     string `toml:"host"`
		Port     string `toml:"port"`
		Name     string `toml:"name"`
		SSLMode  string `toml:"sslmode"`
	} `toml:"database"`
}

// Load 加载配置：先读 TOML 文件作为默认值，再由环境变量覆盖
func Load() (*Config, error) {
	path := getEnv("TRACKFLIX_CONFIG", defaultConfigPath)
	file, err := readFile(path)
	if err != nil {
		return nil, err
	}

	dbUser := getEnv("DB_USER", or(file.Database.User, "postgres"))
	dbPass := getEnv("DB_PASSWORD", or(file.Database.Password, "postgres"))
	dbHost := getEnv("DB_HOST", or(file.Database.Host, "localhost"))
	dbPort := getEnv("DB_PORT", or(file.Database.Port, "5432"))
	dbName := getEnv("DB_NAME", or(file.Database.Name, "trackflix"))
	dbSSL := getEnv("DB_SSLMODE", or(file.Database.SSLMode, "disable"))

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	port := getEnv("PORT", or(file.Port, "5000"))
	env := getEnv("APP_ENV", or(file.Env, "development"))

	appSecret := getEnv("APP_SECRET", defaultSecret)
	if env == "production" && appSecret == defaultSecret {
		log.Println("[Config] 警告：生产环境正在使用默认密钥，请设置 APP_SECRET")
	}

	storage := strings.ToLower(getEnv("STORAGE", or(file.Storage, StorageJSON)))
	if storage != StorageJSON && storage != StoragePostgres {
		return nil, fmt.Errorf("unknown storage %q", storage)
	}

	// 表单控制器调用 API 的超时
	rawTimeout := getEnv("API_TIMEOUT", or(file.APITimeout, defaultAPITimeout))
	apiTimeout, err := time.ParseDuration(rawTimeout)
	if err != nil || apiTimeout <= 0 {
		return nil, fmt.Errorf("invalid api timeout %q", rawTimeout)
	}

	return &Config{
		Env:          env,
		AppSecret:    appSecret,
		Port:         port,
		Storage:      storage,
		MoviesFile:   getEnv("MOVIES_FILE", or(file.MoviesFile, "movies.json")),
		DatabaseURL:  dbURL,
		APIBaseURL:   getEnv("API_BASE_URL", or(file.APIBaseURL, "http://127.0.0.1:"+port)),
		APITimeout:   apiTimeout,
		TemplatesDir: getEnv("TEMPLATES_DIR", or(file.TemplatesDir, "./web/templates")),
		StaticDir:    getEnv("STATIC_DIR", or(file.StaticDir, "./web/static")),
		SiteName:     getEnv("SITE_NAME", or(file.SiteName, "Trackflix")),
	}, nil
}

func readFile(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func or(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
