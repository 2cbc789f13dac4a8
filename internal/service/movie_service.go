package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/adanwillian46-design/trackflix2.0/internal/model"
	"github.com/adanwillian46-design/trackflix2.0/internal/repository"
	"github.com/adanwillian46-design/trackflix2.0/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrTitleRequired 标题为空
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidRating 评分不合法
	ErrInvalidRating = errors.New("rating must not be negative")
)

const (
	listCacheKey = "movies:all"
	listTTL      = 5 * time.Minute
	searchTTL    = 10 * time.Minute
)

// MovieService 片单业务逻辑
type MovieService struct {
	store    repository.MovieStore
	validate *validator.Validate
	lists    *cache.Cache
	searches *utils.SearchCache[[]model.Movie]
	group    singleflight.Group
	// generation 每次变更递增，防止旧的加载结果回填缓存
	generation atomic.Uint64
	now        func() time.Time
}

// NewMovieService 创建片单服务
func NewMovieService(store repository.MovieStore) *MovieService {
	return &MovieService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		lists:    cache.New(listTTL, 2*listTTL),
		searches: utils.NewSearchCache[[]model.Movie](256, searchTTL),
		now:      time.Now,
	}
}

// Store 返回底层存储
func (s *MovieService) Store() repository.MovieStore {
	return s.store
}

// List 返回全部电影（带缓存，并发加载合并为一次）
func (s *MovieService) List(ctx context.Context) ([]model.Movie, error) {
	if cached, ok := s.lists.Get(listCacheKey); ok {
		return cloneMovies(cached.([]model.Movie)), nil
	}

	v, err, _ := s.group.Do(listCacheKey, func() (interface{}, error) {
		gen := s.generation.Load()
		movies, err := s.store.List(ctx)
		if err != nil {
			return nil, err
		}
		if s.generation.Load() == gen {
			s.lists.SetDefault(listCacheKey, movies)
		}
		return movies, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return cloneMovies(v.([]model.Movie)), nil
}

// Count 统计片单数量
func (s *MovieService) Count(ctx context.Context) (int, error) {
	movies, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(movies), nil
}

// Create 校验草稿并保存为新电影
func (s *MovieService) Create(ctx context.Context, draft model.MovieDraft) (*model.Movie, error) {
	if err := s.validate.Struct(draft); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "Title" {
					return nil, ErrTitleRequired
				}
			}
			return nil, ErrInvalidRating
		}
		return nil, err
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	movie := &model.Movie{
		Title:     title,
		Year:      strings.TrimSpace(draft.Year),
		Type:      orDefault(draft.Type, model.DefaultType),
		Poster:    strings.TrimSpace(draft.Poster),
		Genre:     strings.TrimSpace(draft.Genre),
		Status:    orDefault(draft.Status, model.DefaultStatus),
		Rating:    draft.Rating,
		Notes:     strings.TrimSpace(draft.Notes),
		DateAdded: s.now().Format(model.TimeLayout),
	}

	if err := s.store.Create(ctx, movie); err != nil {
		log.Printf("[MovieService] 保存电影失败: %v", err)
		return nil, fmt.Errorf("save movie: %w", err)
	}
	s.invalidate()

	log.Printf("[MovieService] 已添加电影: %s (ID: %d)", movie.Title, movie.ID)
	return movie, nil
}

// UpdateRating 更新评分
func (s *MovieService) UpdateRating(ctx context.Context, id int, rating float64) error {
	if rating < 0 {
		return ErrInvalidRating
	}
	if err := s.store.UpdateRating(ctx, id, rating, s.now().Format(model.TimeLayout)); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// UpdateStatus 更新状态，空状态视为 pending，返回最终写入的状态
func (s *MovieService) UpdateStatus(ctx context.Context, id int, status string) (string, error) {
	status = orDefault(status, model.DefaultStatus)
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return "", err
	}
	s.invalidate()
	return status, nil
}

// Delete 删除电影
func (s *MovieService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Search 按标题、类型（不区分大小写）或年份做子串匹配，空关键词返回全部
func (s *MovieService) Search(ctx context.Context, query string) ([]model.Movie, error) {
	q := strings.ToLower(query)
	gen := s.generation.Load()
	if cached, ok := s.searches.Get(q); ok {
		return cloneMovies(cached), nil
	}

	movies, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := movies
	if q != "" {
		filtered = make([]model.Movie, 0, len(movies))
		for _, m := range movies {
			if strings.Contains(strings.ToLower(m.Title), q) ||
				strings.Contains(strings.ToLower(m.Genre), q) ||
				strings.Contains(m.Year, q) {
				filtered = append(filtered, m)
			}
		}
	}

	if s.generation.Load() == gen {
		s.searches.Set(q, filtered)
	}
	return cloneMovies(filtered), nil
}

// invalidate 清空缓存，并让之后的 List 不再加入变更前发起的加载
func (s *MovieService) invalidate() {
	s.generation.Add(1)
	s.group.Forget(listCacheKey)
	s.lists.Delete(listCacheKey)
	s.searches.Purge()
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func cloneMovies(movies []model.Movie) []model.Movie {
	out := make([]model.Movie, len(movies))
	copy(out, movies)
	return out
}
