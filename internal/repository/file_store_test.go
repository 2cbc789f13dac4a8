package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adanwillian46-design/trackflix2.0/internal/model"
)

func newTestStore(t *testing.T) *FileMovieStore {
	t.Helper()
	store, err := NewFileMovieStore(filepath.Join(t.TempDir(), "data", "movies.json"))
	if err != nil {
		t.Fatalf("NewFileMovieStore returned error: %v", err)
	}
	return store
}

func TestFileMovieStore_MissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t)
	movies, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if movies == nil || len(movies) != 0 {
		t.Fatalf("List = %#v, want empty non-nil slice", movies)
	}
}

func TestFileMovieStore_CreateAssignsIncrementingIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := &model.Movie{Title: "Alien"}
	second := &model.Movie{Title: "Aliens"}
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := store.Create(ctx, second); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d,%d, want 1,2", first.ID, second.ID)
	}

	if err := store.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	third := &model.Movie{Title: "Alien 3"}
	if err := store.Create(ctx, third); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if third.ID != 3 {
		t.Fatalf("third id = %d, want max+1 = 3", third.ID)
	}

	count, err := store.Count(ctx)
	if err != nil || count != 2 {
		t.Fatalf("Count = %d, %v; want 2", count, err)
	}
}

func TestFileMovieStore_UpdatesAndNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	movie := &model.Movie{Title: "Heat", Status: model.DefaultStatus}
	if err := store.Create(ctx, movie); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := store.UpdateRating(ctx, movie.ID, 4.5, "2024-01-02 03:04:05"); err != nil {
		t.Fatalf("UpdateRating returned error: %v", err)
	}
	if err := store.UpdateStatus(ctx, movie.ID, "watched"); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	movies, _ := store.List(ctx)
	if len(movies) != 1 {
		t.Fatalf("len(movies) = %d, want 1", len(movies))
	}
	got := movies[0]
	if got.Rating != 4.5 || got.LastUpdated != "2024-01-02 03:04:05" || got.Status != "watched" {
		t.Fatalf("movie after updates = %#v", got)
	}

	for name, err := range map[string]error{
		"rating": store.UpdateRating(ctx, 99, 1, ""),
		"status": store.UpdateStatus(ctx, 99, "x"),
		"delete": store.Delete(ctx, 99),
	} {
		if !errors.Is(err, ErrMovieNotFound) {
			t.Fatalf("%s on unknown id: err = %v, want ErrMovieNotFound", name, err)
		}
	}
}

func TestFileMovieStore_CorruptFileLoadsEmpty(t *testing.T) {
	store := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(store.path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	movies, err := store.List(context.Background())
	if err != nil || len(movies) != 0 {
		t.Fatalf("List = %v, %v; want empty", movies, err)
	}
}

func TestFileMovieStore_KeepsNonASCII(t *testing.T) {
	store := newTestStore(t)
	if err := store.Create(context.Background(), &model.Movie{Title: "Cidade de Deus", Genre: "Ação & Drama"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	data, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "Ação & Drama") {
		t.Fatalf("file contents = %s, want unescaped text", data)
	}
}
