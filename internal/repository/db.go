package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adanwillian46-design/trackflix2.0/internal/model"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrMovieNotFound 电影不存在
var ErrMovieNotFound = errors.New("movie not found")

// MovieStore 片单存储
type MovieStore interface {
	List(ctx context.Context) ([]model.Movie, error)
	Create(ctx context.Context, movie *model.Movie) error
	UpdateRating(ctx context.Context, id int, rating float64, updatedAt string) error
	UpdateStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	// Describe 返回存储位置描述，用于诊断页面
	Describe() string
}

// InitDB 初始化数据库连接（lib/pq 连接池 + gorm）
func InitDB(databaseURL string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("初始化 gorm 失败: %w", err)
	}

	if err := db.AutoMigrate(&model.Movie{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}
