package form

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/adanwillian46-design/trackflix2.0/internal/client"
	"github.com/adanwillian46-design/trackflix2.0/internal/model"
)

type recordingView struct {
	alerts  []string
	reloads int
}

func (v *recordingView) Alert(message string) { v.alerts = append(v.alerts, message) }
func (v *recordingView) Reload()              { v.reloads++ }

type fakeCreator struct {
	calls  int
	drafts []model.MovieDraft
	result *client.CreateResult
	err    error
}

func (f *fakeCreator) CreateMovie(_ context.Context, draft model.MovieDraft) (*client.CreateResult, error) {
	f.calls++
	f.drafts = append(f.drafts, draft)
	return f.result, f.err
}

func formDoc(title string) *FormDocument {
	return NewFormDocument(url.Values{
		FieldTitle:  {title},
		FieldYear:   {"1982"},
		FieldType:   {"movie"},
		FieldGenre:  {"Sci-Fi"},
		FieldPoster: {"https://img.example/bladerunner.jpg"},
		FieldNotes:  {"director's cut"},
	})
}

func TestSubmitMovie_EmptyTitleNeverSends(t *testing.T) {
	api := &fakeCreator{result: &client.CreateResult{Success: true}}
	view := &recordingView{}

	_, err := NewController(api).SubmitMovie(context.Background(), formDoc(""), view)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if api.calls != 0 {
		t.Fatalf("CreateMovie called %d times, want 0", api.calls)
	}
	if len(view.alerts) != 1 || view.alerts[0] != MsgTitleRequired {
		t.Fatalf("alerts = %q, want validation prompt", view.alerts)
	}
	if view.reloads != 0 {
		t.Fatalf("reloads = %d, want 0", view.reloads)
	}
}

func TestSubmitMovie_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		result      *client.CreateResult
		err         error
		wantAlert   string
		wantReloads int
		wantErrMsg  string
	}{
		{
			name:        "success reloads once",
			result:      &client.CreateResult{Success: true, Movie: &model.Movie{ID: 1}},
			wantAlert:   MsgMovieAdded,
			wantReloads: 1,
		},
		{
			name:       "server error message",
			result:     &client.CreateResult{Success: false, Error: "X"},
			wantAlert:  "Error: X",
			wantErrMsg: "X",
		},
		{
			name:       "failure without message",
			result:     &client.CreateResult{Success: false},
			wantAlert:  "Error: " + MsgUnknownError,
			wantErrMsg: MsgUnknownError,
		},
		{
			name:       "transport failure",
			err:        errors.New("dial tcp: connection refused"),
			wantAlert:  MsgConnection,
			wantErrMsg: MsgConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeCreator{result: tt.result, err: tt.err}
			view := &recordingView{}

			movie, err := NewController(api).SubmitMovie(context.Background(), formDoc("Blade Runner"), view)

			if api.calls != 1 {
				t.Fatalf("CreateMovie called %d times, want 1", api.calls)
			}
			if api.drafts[0].Title != "Blade Runner" || api.drafts[0].Notes != "director's cut" {
				t.Fatalf("draft = %#v", api.drafts[0])
			}
			if len(view.alerts) != 1 || view.alerts[0] != tt.wantAlert {
				t.Fatalf("alerts = %q, want [%q]", view.alerts, tt.wantAlert)
			}
			if view.reloads != tt.wantReloads {
				t.Fatalf("reloads = %d, want %d", view.reloads, tt.wantReloads)
			}

			if tt.wantErrMsg == "" {
				if err != nil || movie == nil {
					t.Fatalf("SubmitMovie = %v, %v; want movie", movie, err)
				}
				return
			}
			var rerr *RequestError
			if !errors.As(err, &rerr) || rerr.Message != tt.wantErrMsg {
				t.Fatalf("err = %v, want RequestError %q", err, tt.wantErrMsg)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want it to wrap transport error", err)
			}
		})
	}
}

func TestSubmitMovie_OverHTTP(t *testing.T) {
	var posts atomic.Int32
	var gotTitle string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/movies" {
			http.NotFound(w, r)
			return
		}
		posts.Add(1)
		var draft model.MovieDraft
		_ = json.NewDecoder(r.Body).Decode(&draft)
		gotTitle = draft.Title
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"movie":{"id":3,"title":"x"}}`))
	}))
	t.Cleanup(server.Close)

	api, err := client.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	view := &recordingView{}
	title := "  Spaced  Title "
	if _, err := NewController(api).SubmitMovie(context.Background(), formDoc(title), view); err != nil {
		t.Fatalf("SubmitMovie returned error: %v", err)
	}
	if posts.Load() != 1 {
		t.Fatalf("POST count = %d, want 1", posts.Load())
	}
	if gotTitle != title {
		t.Fatalf("posted title = %q, want verbatim %q", gotTitle, title)
	}
	if view.reloads != 1 {
		t.Fatalf("reloads = %d, want 1", view.reloads)
	}
}

func TestSubmitMovie_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	api, _ := client.NewClient(base)
	view := &recordingView{}
	_, err := NewController(api).SubmitMovie(context.Background(), formDoc("Alien"), view)

	var rerr *RequestError
	if !errors.As(err, &rerr) || rerr.Err == nil {
		t.Fatalf("err = %v, want transport RequestError", err)
	}
	if len(view.alerts) != 1 || view.alerts[0] != MsgConnection || view.reloads != 0 {
		t.Fatalf("view = %+v", view)
	}
}

const filterPage = `<html><body>
<input id="searchInput" value="matrix">
<button class="filter-btn active" data-status="all">All</button>
<button class="filter-btn" data-status="watched">Watched</button>
<button class="filter-btn" data-status="pending">Pending</button>
</body></html>`

func TestSearchMovies_AcknowledgesQuery(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(filterPage))
	if err != nil {
		t.Fatalf("ParseHTML returned error: %v", err)
	}
	view := &recordingView{}
	if got := NewController(nil).SearchMovies(doc, view); got != "matrix" {
		t.Fatalf("query = %q, want matrix", got)
	}
	if len(view.alerts) != 1 || view.alerts[0] != "Searching: matrix" || view.reloads != 0 {
		t.Fatalf("view = %+v", view)
	}
}

func TestFilterMovies_MovesActiveClass(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(filterPage))
	if err != nil {
		t.Fatalf("ParseHTML returned error: %v", err)
	}
	trigger := doc.Find(`.filter-btn[data-status="watched"]`)
	if len(trigger) != 1 {
		t.Fatalf("trigger lookup = %d elements", len(trigger))
	}
	view := &recordingView{}

	NewController(nil).FilterMovies("watched", trigger[0], doc, view)

	if len(view.alerts) != 1 || view.alerts[0] != "Filtering by: watched" {
		t.Fatalf("alerts = %q", view.alerts)
	}
	active := 0
	for _, btn := range doc.ElementsByClass(FilterButtonClass) {
		if btn.HasClass(ActiveClass) {
			active++
			if btn.Attr("data-status") != "watched" {
				t.Fatalf("active button = %q, want watched", btn.Attr("data-status"))
			}
		}
	}
	if active != 1 {
		t.Fatalf("active buttons = %d, want 1", active)
	}
}
