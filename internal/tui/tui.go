package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/strrl/unsplash-gallery/internal/browser"
	"github.com/strrl/unsplash-gallery/internal/gallery"
	"github.com/strrl/unsplash-gallery/internal/logging"
)

type focusArea int

const (
	focusGrid focusArea = iota
	focusSearch
)

// chrome is the number of lines taken by header, search box, status and footer
const chrome = 4

// Options configures the interactive gallery
type Options struct {
	Searcher     gallery.Searcher
	Logger       *slog.Logger
	Columns      int
	InitialQuery string

	// OpenURL overrides the system browser opener
	OpenURL func(string) error
}

type model struct {
	ctx      context.Context
	searcher gallery.Searcher
	log      *slog.Logger
	openURL  func(string) error

	session   gallery.Session
	selection gallery.Selection
	pending   *gallery.FetchRequest

	input    textinput.Model
	viewport viewport.Model
	loader   *LoadingIndicator
	keys     keyMap

	focus    focusArea
	cursor   int
	columns  int
	status   string
	spinning bool
	ready    bool
	width    int
	height   int
}

func initialModel(ctx context.Context, opts Options) model {
	input := textinput.New()
	input.Placeholder = "Search images..."
	input.Prompt = "🔍 "
	input.CharLimit = 200

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = browser.Open
	}
	columns := opts.Columns
	if columns < 1 {
		columns = 3
	}

	m := model{
		ctx:      ctx,
		searcher: opts.Searcher,
		log:      logger.With("component", "tui"),
		openURL:  openURL,
		session:  gallery.NewSession(),
		input:    input,
		loader:   NewLoadingIndicator("Loading images..."),
		keys:     defaultKeyMap(),
		columns:  columns,
	}

	query := strings.TrimSpace(opts.InitialQuery)
	if query == "" {
		m.focus = focusSearch
		m.input.Focus()
		return m
	}

	m.input.SetValue(query)
	next, req := m.session.StartSearch(query)
	m.session = next
	m.pending = &req
	m.loader.Track(req)
	m.spinning = true
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.pending != nil {
		cmds = append(cmds, fetchCmd(m.ctx, m.searcher, *m.pending), tickCmd())
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewHeight := msg.Height - chrome
		if viewHeight < 1 {
			viewHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewHeight
		}
		m.input.Width = msg.Width - 6
		m.updateViewport()
		return m, nil

	case PhotosLoadedMsg:
		return m.handlePhotosLoaded(msg)

	case URLOpenedMsg:
		if msg.Error != nil {
			m.log.Warn("open in browser failed", "url", msg.URL, "err", msg.Error)
			m.status = fmt.Sprintf("Could not open browser: %v", msg.Error)
		} else {
			m.status = "Opened in browser"
		}
		return m, nil

	case TickMsg:
		if !m.session.Loading {
			m.spinning = false
			return m, nil
		}
		m.loader.Tick()
		m.updateViewport()
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m model) handlePhotosLoaded(msg PhotosLoadedMsg) (tea.Model, tea.Cmd) {
	req := msg.Result.Request
	if req.Generation != m.session.Generation {
		m.log.Debug("stale result dropped", "request_id", req.RequestID, "generation", req.Generation)
		return m, nil
	}
	if msg.Result.Err != nil {
		m.log.Error("fetch failed", "request_id", req.RequestID, "kind", req.Kind, "page", req.Page, "err", msg.Result.Err)
	} else {
		m.log.Debug("fetch done", "request_id", req.RequestID, "kind", req.Kind, "page", req.Page, "results", len(msg.Result.Page.Results))
	}

	m.pending = nil
	m.session = m.session.Apply(msg.Result)
	if m.cursor >= len(m.session.Items) {
		m.cursor = 0
	}
	m.updateViewport()
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.selection.IsOpen {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
			m.selection = m.selection.Close()
		case key.Matches(msg, m.keys.Browser):
			return m, m.openInBrowser()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if m.focus == focusSearch {
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Back):
			m.focus = focusGrid
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.columns)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.columns)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(m.session.Items) {
			m.selection = m.selection.Open(m.session.Items[m.cursor])
			m.status = ""
		}
	case key.Matches(msg, m.keys.LoadMore):
		return m.loadMore()
	case key.Matches(msg, m.keys.Browser):
		return m, m.openInBrowser()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit starts a new search for the text in the search box
func (m model) submit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.status = "Type something to search"
		return m, nil
	}

	next, req := m.session.StartSearch(query)
	m.session = next
	m.pending = &req
	m.loader.Track(req)
	m.cursor = 0
	m.status = ""
	m.focus = focusGrid
	m.input.Blur()
	m.viewport.GotoTop()
	m.log.Info("search started", "request_id", req.RequestID, "query", query, "generation", req.Generation)
	m.updateViewport()

	spin := m.startSpinner()
	return m, tea.Batch(fetchCmd(m.ctx, m.searcher, req), spin)
}

// loadMore requests the next page when the session allows it
func (m model) loadMore() (tea.Model, tea.Cmd) {
	next, req, ok := m.session.LoadMore()
	if !ok {
		return m, nil
	}
	m.session = next
	m.pending = &req
	m.loader.Track(req)
	m.status = ""
	m.log.Info("load more", "request_id", req.RequestID, "page", req.Page)
	m.updateViewport()

	spin := m.startSpinner()
	return m, tea.Batch(fetchCmd(m.ctx, m.searcher, req), spin)
}

func (m *model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return tickCmd()
}

func (m model) openInBrowser() tea.Cmd {
	item := m.selection.Item
	if item == nil {
		if m.cursor >= len(m.session.Items) {
			return nil
		}
		item = &m.session.Items[m.cursor]
	}
	url := item.Links.HTML
	if url == "" {
		url = item.FullURL()
	}
	return openURLCmd(m.openURL, url)
}

func (m *model) moveCursor(delta int) {
	n := len(m.session.Items)
	if n == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= n {
		return
	}
	m.cursor = next
	m.updateViewport()
	m.ensureCursorVisible()
}

func (m *model) ensureCursorVisible() {
	if !m.ready {
		return
	}
	top := (m.cursor / m.columns) * tileHeight
	bottom := top + tileHeight
	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBody())
}

// galleryView is the presentation snapshot the renderers read from
func (m model) galleryView() gallery.View {
	return m.session.View(m.selection)
}

// Run starts the interactive gallery and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		initialModel(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
