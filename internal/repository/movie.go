package repository

import (
	"context"

	"github.com/adanwillian46-design/trackflix2.0/internal/model"
	"gorm.io/gorm"
)

// MovieRepository PostgreSQL 片单存储
type MovieRepository struct {
	db *gorm.DB
}

var _ MovieStore = (*MovieRepository)(nil)

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// List 按 ID 顺序返回全部电影
func (r *MovieRepository) List(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.WithContext(ctx).Order("id ASC").Find(&movies).Error
	return movies, err
}

// Create 新增电影，ID 由数据库分配
func (r *MovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	movie.ID = 0
	return r.db.WithContext(ctx).Create(movie).Error
}

// UpdateRating 更新评分
func (r *MovieRepository) UpdateRating(ctx context.Context, id int, rating float64, updatedAt string) error {
	res := r.db.WithContext(ctx).Model(&model.Movie{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"last_updated": updatedAt,
		})
	return affected(res)
}

// UpdateStatus 更新观看状态
func (r *MovieRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Movie{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	return affected(res)
}

// Delete 删除电影
func (r *MovieRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Movie{})
	return affected(res)
}

// Count 统计电影数量
func (r *MovieRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Movie{}).Count(&count).Error
	return int(count), err
}

func (r *MovieRepository) Describe() string {
	return "postgres:" + r.db.Migrator().CurrentDatabase()
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMovieNotFound
	}
	return nil
}
