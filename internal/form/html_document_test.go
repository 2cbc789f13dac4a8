package form

import (
	"strings"
	"testing"
)

const formPage = `<html><body>
<form>
  <input id="movieTitle" name="movieTitle" value="Amélie">
  <input id="movieYear" name="movieYear" value="">
  <select id="movieType" name="movieType">
    <option value="movie">Movie</option>
    <option value="series" selected>Series</option>
  </select>
  <select id="movieGenre" name="movieGenre"><option>Drama</option></select>
  <textarea id="movieNotes" name="movieNotes">line one</textarea>
</form>
<div id="movieGrid"></div>
</body></html>`

func TestHTMLDocument_Values(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(formPage))
	if err != nil {
		t.Fatalf("ParseHTML returned error: %v", err)
	}

	tests := map[string]string{
		FieldTitle:  "Amélie",
		FieldYear:   "",
		FieldType:   "series",
		FieldGenre:  "Drama",
		FieldNotes:  "line one",
		FieldPoster: "",
	}
	for id, want := range tests {
		if got := doc.Value(id); got != want {
			t.Errorf("Value(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestHTMLDocument_ElementsAndRender(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(formPage))
	if err != nil {
		t.Fatalf("ParseHTML returned error: %v", err)
	}
	if _, ok := doc.Element(FieldSearch); ok {
		t.Fatal("searchInput should be missing")
	}
	grid, ok := doc.Element(MovieGrid)
	if !ok || grid.ID() != MovieGrid {
		t.Fatalf("movieGrid lookup = %v, %v", grid, ok)
	}
	grid.AddClass("loaded")

	html, err := doc.HTML()
	if err != nil {
		t.Fatalf("HTML returned error: %v", err)
	}
	if !strings.Contains(html, `<div id="movieGrid" class="loaded">`) {
		t.Fatalf("rendered html missing class: %s", html)
	}
}

func TestFormDocument(t *testing.T) {
	doc := NewFormDocument(nil)
	if doc.Value(FieldTitle) != "" {
		t.Fatal("empty form should have no title")
	}
	if _, ok := doc.Element(FieldTitle); ok {
		t.Fatal("form documents have no elements")
	}
	if len(doc.ElementsByClass(FilterButtonClass)) != 0 {
		t.Fatal("form documents have no elements")
	}
}
