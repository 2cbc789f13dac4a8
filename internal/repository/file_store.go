package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/adanwillian46-design/trackflix2.0/internal/model"
)

// FileMovieStore 以 JSON 文件保存片单，文件内容是电影数组
type FileMovieStore struct {
	path string
	mu   sync.Mutex
}

var _ MovieStore = (*FileMovieStore)(nil)

// NewFileMovieStore 创建文件存储，文件不存在时视为空片单
func NewFileMovieStore(path string) (*FileMovieStore, error) {
	if path == "" {
		return nil, errors.New("movies file path is required")
	}
	return &FileMovieStore{path: path}, nil
}

func (s *FileMovieStore) List(ctx context.Context) ([]model.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Create 追加电影，新 ID 为现有最大 ID + 1
func (s *FileMovieStore) Create(ctx context.Context, movie *model.Movie) error {
	return s.update(func(movies []model.Movie) ([]model.Movie, error) {
		maxID := 0
		for _, m := range movies {
			if m.ID > maxID {
				maxID = m.ID
			}
		}
		movie.ID = maxID + 1
		return append(movies, *movie), nil
	})
}

func (s *FileMovieStore) UpdateRating(ctx context.Context, id int, rating float64, updatedAt string) error {
	return s.update(func(movies []model.Movie) ([]model.Movie, error) {
		for i := range movies {
			if movies[i].ID == id {
				movies[i].Rating = rating
				movies[i].LastUpdated = updatedAt
				return movies, nil
			}
		}
		return nil, fmt.Errorf("%w: %d", ErrMovieNotFound, id)
	})
}

func (s *FileMovieStore) UpdateStatus(ctx context.Context, id int, status string) error {
	return s.update(func(movies []model.Movie) ([]model.Movie, error) {
		for i := range movies {
			if movies[i].ID == id {
				movies[i].Status = status
				return movies, nil
			}
		}
		return nil, fmt.Errorf("%w: %d", ErrMovieNotFound, id)
	})
}

func (s *FileMovieStore) Delete(ctx context.Context, id int) error {
	return s.update(func(movies []model.Movie) ([]model.Movie, error) {
		out := movies[:0]
		for _, m := range movies {
			if m.ID != id {
				out = append(out, m)
			}
		}
		if len(out) == len(movies) {
			return nil, fmt.Errorf("%w: %d", ErrMovieNotFound, id)
		}
		return out, nil
	})
}

func (s *FileMovieStore) Count(ctx context.Context) (int, error) {
	movies, err := s.List(ctx)
	return len(movies), err
}

func (s *FileMovieStore) Describe() string {
	if abs, err := filepath.Abs(s.path); err == nil {
		return abs
	}
	return s.path
}

func (s *FileMovieStore) update(mutate func([]model.Movie) ([]model.Movie, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies, err := mutate(s.load())
	if err != nil {
		return err
	}
	return s.save(movies)
}

// load 读取文件；文件缺失或损坏时返回空片单
func (s *FileMovieStore) load() []model.Movie {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[FileMovieStore] 读取片单失败: %v", err)
		}
		return []model.Movie{}
	}

	var movies []model.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		log.Printf("[FileMovieStore] 解析片单失败: %v", err)
		return []model.Movie{}
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return movies
}

func (s *FileMovieStore) save(movies []model.Movie) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(movies); err != nil {
		return fmt.Errorf("encode movies file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create movies dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write movies file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace movies file: %w", err)
	}
	return nil
}
