package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/strrl/unsplash-gallery/internal/gallery"
	"github.com/strrl/unsplash-gallery/pkg/models"
)

func testPhotos(ids ...string) []models.Photo {
	out := make([]models.Photo, len(ids))
	for i, id := range ids {
		out[i] = models.Photo{
			ID:          id,
			Description: "photo " + id,
			Links:       models.PhotoLinks{HTML: "https://unsplash.com/photos/" + id},
		}
	}
	return out
}

func newTestModel(t *testing.T, searcher gallery.Searcher) model {
	t.Helper()
	m := initialModel(context.Background(), Options{Searcher: searcher, Columns: 3})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(model), cmd
}

// loaded builds the message a fetch for req would produce
func loaded(req gallery.FetchRequest, totalPages int, ids ...string) PhotosLoadedMsg {
	return PhotosLoadedMsg{Result: gallery.FetchResult{
		Request: req,
		Page:    models.SearchPage{TotalPages: totalPages, Results: testPhotos(ids...)},
	}}
}

// searchLoaded drives a search for query to completion with the given page
func searchLoaded(t *testing.T, m model, query string, totalPages int, ids ...string) model {
	t.Helper()
	m.input.SetValue(query)
	m.focus = focusSearch
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.pending == nil {
		t.Fatal("submit should leave a pending request")
	}
	m, _ = press(t, m, loaded(*m.pending, totalPages, ids...))
	return m
}

func TestModelInitialization(t *testing.T) {
	m := initialModel(context.Background(), Options{})

	if m.focus != focusSearch {
		t.Error("Search box should be focused without an initial query")
	}
	if m.pending != nil {
		t.Error("No request should be pending without an initial query")
	}
	if m.columns != 3 {
		t.Errorf("Expected default of 3 columns, got %d", m.columns)
	}
	if m.session.Loading {
		t.Error("Session should start idle")
	}
	if m.View() != "\n  Initializing..." {
		t.Error("View should show the initializing text before the first resize")
	}
}

func TestInitialQueryStartsSearch(t *testing.T) {
	m := initialModel(context.Background(), Options{InitialQuery: "  mountains "})

	if m.pending == nil {
		t.Fatal("Initial query should issue a request")
	}
	if m.pending.Query != "mountains" || m.pending.Page != 1 {
		t.Errorf("Unexpected request %+v", *m.pending)
	}
	if !m.session.Loading {
		t.Error("Session should be loading")
	}
	if m.focus != focusGrid {
		t.Error("Grid should be focused when a search is running")
	}
	if m.Init() == nil {
		t.Error("Init should return the fetch command")
	}
}

func TestViewportInitialization(t *testing.T) {
	m := newTestModel(t, nil)

	if !m.ready {
		t.Error("Model should be ready after the first window size message")
	}
	if m.viewport.Height != 40-chrome {
		t.Errorf("Expected viewport height %d, got %d", 40-chrome, m.viewport.Height)
	}

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.viewport.Width != 60 || m.viewport.Height != 20-chrome {
		t.Error("Viewport should follow window resizes")
	}
}

func TestSubmitStartsSearch(t *testing.T) {
	m := newTestModel(t, nil)
	m.input.SetValue("cats")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("Submit should return a fetch command")
	}
	if !m.session.Loading {
		t.Error("Loading should be set synchronously on submit")
	}
	if m.session.Query != "cats" || m.session.CurrentPage != 1 {
		t.Errorf("Unexpected session %+v", m.session)
	}
	if m.pending == nil || m.pending.Generation != m.session.Generation {
		t.Error("Pending request should carry the session generation")
	}
	if m.focus != focusGrid {
		t.Error("Focus should move to the grid after submit")
	}
}

func TestSubmitIgnoresEmptyQuery(t *testing.T) {
	m := newTestModel(t, nil)
	m.input.SetValue("   ")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("Empty query should not start a fetch")
	}
	if m.session.Loading || m.pending != nil {
		t.Error("Empty query should leave the session idle")
	}
	if m.status == "" {
		t.Error("Empty query should set a hint in the status line")
	}
}

func TestPhotosLoadedAppliesResults(t *testing.T) {
	m := newTestModel(t, nil)
	m = searchLoaded(t, m, "cats", 3, "a", "b", "c")

	if m.session.Loading {
		t.Error("Loading should clear when results arrive")
	}
	if len(m.session.Items) != 3 {
		t.Errorf("Expected 3 items, got %d", len(m.session.Items))
	}
	if m.session.CurrentPage != 2 {
		t.Errorf("Expected next page 2, got %d", m.session.CurrentPage)
	}
	if m.pending != nil {
		t.Error("Pending request should clear once resolved")
	}
	if !strings.Contains(m.View(), "photo a") {
		t.Error("View should render the loaded tiles")
	}
	if !strings.Contains(m.View(), "Load more") {
		t.Error("View should show the load more button")
	}
}

func TestStaleResultIgnored(t *testing.T) {
	m := newTestModel(t, nil)

	m.input.SetValue("cats")
	m.focus = focusSearch
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	first := *m.pending

	m.input.SetValue("dogs")
	m.focus = focusSearch
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	second := *m.pending

	m, _ = press(t, m, loaded(first, 5, "cat1"))
	if !m.session.Loading || len(m.session.Items) != 0 {
		t.Error("Result from the superseded search should be dropped")
	}

	m, _ = press(t, m, loaded(second, 2, "dog1"))
	if m.session.Loading || len(m.session.Items) != 1 || m.session.Items[0].ID != "dog1" {
		t.Errorf("Latest search should win, got %+v", m.session)
	}
}

func TestNoResultsMessage(t *testing.T) {
	m := newTestModel(t, nil)
	m = searchLoaded(t, m, "zzzz", 0)

	if m.session.ErrorMessage != gallery.MsgNoResults {
		t.Errorf("Expected no-results message, got %q", m.session.ErrorMessage)
	}
	if !strings.Contains(m.View(), gallery.MsgNoResults) {
		t.Error("View should show the no-results banner")
	}
}

func TestFetchErrorMessage(t *testing.T) {
	m := newTestModel(t, nil)
	m.input.SetValue("cats")
	m.focus = focusSearch
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = press(t, m, PhotosLoadedMsg{Result: gallery.FetchResult{
		Request: *m.pending,
		Err:     errors.New("boom"),
	}})

	if m.session.Loading {
		t.Error("Loading should clear on failure")
	}
	if !strings.Contains(m.View(), gallery.MsgFetchFailed) {
		t.Error("View should show the fetch error banner")
	}
}

func TestLoadMoreKey(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	_, cmd := press(t, m, runes("m"))
	if cmd != nil {
		t.Error("Load more should do nothing before any search")
	}

	m = searchLoaded(t, m, "cats", 3, "a", "b")
	m, cmd = press(t, m, runes("m"))
	if cmd == nil {
		t.Fatal("Load more should issue a request")
	}
	if !m.session.Loading || m.pending == nil || m.pending.Page != 2 {
		t.Errorf("Expected in-flight request for page 2, got %+v", m.pending)
	}

	_, cmd = press(t, m, runes("m"))
	if cmd != nil {
		t.Error("Load more should be refused while loading")
	}

	m, _ = press(t, m, loaded(*m.pending, 3, "c", "d"))
	if len(m.session.Items) != 4 {
		t.Errorf("Expected appended items, got %d", len(m.session.Items))
	}
	if m.session.CurrentPage != 3 || m.session.CanLoadMore() {
		t.Error("Last page should not be requestable")
	}
}

func TestModalOpenCloseDuringLoad(t *testing.T) {
	m := newTestModel(t, nil)
	m = searchLoaded(t, m, "cats", 3, "a", "b", "c")

	m, _ = press(t, m, runes("m"))
	if !m.session.Loading {
		t.Fatal("Expected a load in flight")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.selection.IsOpen || m.selection.Item == nil || m.selection.Item.ID != "a" {
		t.Errorf("Enter should open the selected photo, got %+v", m.selection)
	}
	if !strings.Contains(m.View(), "esc: close") {
		t.Error("View should render the modal")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.selection.IsOpen || m.selection.Item != nil {
		t.Error("Esc should close the modal")
	}
	if !m.session.Loading || len(m.session.Items) != 3 {
		t.Error("Modal should not touch the session")
	}
}

func TestGridNavigation(t *testing.T) {
	m := newTestModel(t, nil)
	m = searchLoaded(t, m, "cats", 1, "a", "b", "c", "d", "e")

	steps := []struct {
		key    tea.KeyMsg
		cursor int
	}{
		{runes("l"), 1},
		{tea.KeyMsg{Type: tea.KeyDown}, 4},
		{tea.KeyMsg{Type: tea.KeyDown}, 4},
		{runes("h"), 3},
		{runes("k"), 0},
		{tea.KeyMsg{Type: tea.KeyLeft}, 0},
	}
	for _, step := range steps {
		m, _ = press(t, m, step.key)
		if m.cursor != step.cursor {
			t.Errorf("After %q expected cursor %d, got %d", step.key.String(), step.cursor, m.cursor)
		}
	}
}

func TestSearchFocus(t *testing.T) {
	m := newTestModel(t, nil)
	m = searchLoaded(t, m, "cats", 1, "a")

	m, _ = press(t, m, runes("/"))
	if m.focus != focusSearch {
		t.Fatal("Slash should focus the search box")
	}

	m.input.SetValue("")
	m, _ = press(t, m, runes("q"))
	if m.input.Value() != "q" {
		t.Errorf("q should be typed into the search box, got %q", m.input.Value())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusGrid {
		t.Error("Esc should return focus to the grid")
	}
}

func TestOpenInBrowser(t *testing.T) {
	var opened string
	m := initialModel(context.Background(), Options{
		OpenURL: func(url string) error {
			opened = url
			return nil
		},
	})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = searchLoaded(t, m, "cats", 1, "a", "b")

	m, _ = press(t, m, runes("l"))
	_, cmd := press(t, m, runes("o"))
	if cmd == nil {
		t.Fatal("o should return an open command")
	}

	msg, ok := cmd().(URLOpenedMsg)
	if !ok {
		t.Fatal("Expected URLOpenedMsg")
	}
	if opened != "https://unsplash.com/photos/b" || msg.Error != nil {
		t.Errorf("Unexpected open of %q: %v", opened, msg.Error)
	}

	m, _ = press(t, m, msg)
	if m.status != "Opened in browser" {
		t.Errorf("Unexpected status %q", m.status)
	}
}

func TestFetchCmd(t *testing.T) {
	searcher := gallery.SearcherFunc(func(ctx context.Context, query string, page int) (models.SearchPage, error) {
		return models.SearchPage{TotalPages: 1, Results: testPhotos(query)}, nil
	})
	req := gallery.FetchRequest{Query: "cats", Page: 1, Generation: 7}

	msg := fetchCmd(context.Background(), searcher, req)()

	loadedMsg, ok := msg.(PhotosLoadedMsg)
	if !ok {
		t.Fatalf("Expected PhotosLoadedMsg, got %T", msg)
	}
	if loadedMsg.Result.Request.Generation != 7 {
		t.Error("Result should carry the request it answers")
	}
	if len(loadedMsg.Result.Page.Results) != 1 || loadedMsg.Result.Page.Results[0].ID != "cats" {
		t.Error("Result should carry the fetched page")
	}
}

func TestSpinnerStopsWhenIdle(t *testing.T) {
	m := newTestModel(t, nil)
	m.input.SetValue("cats")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.spinning {
		t.Fatal("Spinner should start with the search")
	}

	m, cmd := press(t, m, TickMsg{})
	if cmd == nil {
		t.Error("Spinner should keep ticking while loading")
	}

	m, _ = press(t, m, loaded(*m.pending, 1, "a"))
	m, cmd = press(t, m, TickMsg{})
	if cmd != nil || m.spinning {
		t.Error("Spinner should stop once loading is done")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"a longer title", 8, "a lon..."},
		{"日本語のタイトル", 5, "日本..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("a quick brown fox jumps", 10)
	want := []string{"a quick", "brown fox", "jumps"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestLoadingIndicatorTracksRequest(t *testing.T) {
	l := NewLoadingIndicator("Loading images...")

	l.Track(gallery.FetchRequest{Kind: gallery.KindSearch, Query: "cats", Page: 1})
	if !strings.Contains(l.View(), `Searching "cats"`) {
		t.Errorf("Unexpected search label %q", l.View())
	}

	l.Tick()
	l.Track(gallery.FetchRequest{Kind: gallery.KindLoadMore, Query: "cats", Page: 3})
	if l.frame != 0 {
		t.Error("Track should restart the animation")
	}
	if !strings.Contains(l.View(), `Loading page 3 of "cats"`) {
		t.Errorf("Unexpected load more label %q", l.View())
	}

	for i := 0; i < len(l.spinner.Frames); i++ {
		l.Tick()
	}
	if l.frame != 0 {
		t.Error("Spinner should wrap around")
	}
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	lines := wrapText("see https://unsplash.com/photos/abcdef now", 12)
	want := []string{"see", "https://unsp", "lash.com/pho", "tos/abcdef", "now"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}

	for _, line := range wrapText("ああああああああ", 3) {
		if n := utf8.RuneCountInString(line); n > 3 {
			t.Errorf("Line %q is %d runes wide, want at most 3", line, n)
		}
	}
}
