package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/strrl/unsplash-gallery/internal/gallery"
)

// Message types for async operations
type (
	// PhotosLoadedMsg carries the single resolution of a page fetch
	PhotosLoadedMsg struct {
		Result gallery.FetchResult
	}

	// URLOpenedMsg reports the outcome of opening a photo in the browser
	URLOpenedMsg struct {
		URL   string
		Error error
	}

	// TickMsg is sent periodically for spinner animation
	TickMsg time.Time
)

// fetchCmd runs one page fetch asynchronously
func fetchCmd(ctx context.Context, searcher gallery.Searcher, req gallery.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		return PhotosLoadedMsg{Result: gallery.Fetch(ctx, searcher, req)}
	}
}

// openURLCmd hands url to the system opener
func openURLCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return URLOpenedMsg{URL: url, Error: open(url)}
	}
}

// tickCmd creates a ticker for spinner animation
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
