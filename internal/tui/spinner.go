package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/strrl/unsplash-gallery/internal/gallery"
)

// LoadingIndicator is a spinner labelled with the request in flight. Frames
// advance on the model's own TickMsg rather than the spinner's tick.
type LoadingIndicator struct {
	spinner spinner.Spinner
	frame   int
	message string
}

// NewLoadingIndicator creates a new loading indicator
func NewLoadingIndicator(message string) *LoadingIndicator {
	return &LoadingIndicator{
		spinner: spinner.Dot,
		message: message,
	}
}

// Track labels the indicator for req and restarts the animation
func (l *LoadingIndicator) Track(req gallery.FetchRequest) {
	l.frame = 0
	switch req.Kind {
	case gallery.KindLoadMore:
		l.message = fmt.Sprintf("Loading page %d of %q...", req.Page, req.Query)
	default:
		l.message = fmt.Sprintf("Searching %q...", req.Query)
	}
}

// Tick advances the spinner animation
func (l *LoadingIndicator) Tick() {
	l.frame = (l.frame + 1) % len(l.spinner.Frames)
}

// View renders the loading indicator
func (l *LoadingIndicator) View() string {
	spinnerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212"))

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	return fmt.Sprintf("%s %s",
		spinnerStyle.Render(strings.TrimSpace(l.spinner.Frames[l.frame])),
		messageStyle.Render(l.message))
}
