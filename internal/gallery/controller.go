package gallery

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/strrl/unsplash-gallery/pkg/models"
)

// Controller owns one Session and one Selection and drives fetches against a
// Searcher. It is safe for use from several goroutines; overlapping searches
// resolve to the most recently started one.
type Controller struct {
	searcher Searcher
	log      *slog.Logger

	mu        sync.Mutex
	session   Session
	selection Selection
}

// NewController creates a controller with an idle session
func NewController(searcher Searcher, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		searcher: searcher,
		log:      logger.With("component", "gallery"),
		session:  NewSession(),
	}
}

// StartSearch resets the session for query, fetches page 1 and returns the
// resulting view. Failures are reported through View.ErrorMessage only.
func (c *Controller) StartSearch(ctx context.Context, query string) View {
	c.mu.Lock()
	next, req := c.session.StartSearch(query)
	c.session = next
	c.mu.Unlock()

	return c.run(ctx, req)
}

// LoadMore fetches the next page and appends it. ok is false when no request
// was issued because CanLoadMore did not hold.
func (c *Controller) LoadMore(ctx context.Context) (View, bool) {
	c.mu.Lock()
	next, req, ok := c.session.LoadMore()
	if !ok {
		v := c.session.View(c.selection)
		c.mu.Unlock()
		return v, false
	}
	c.session = next
	c.mu.Unlock()

	return c.run(ctx, req), true
}

func (c *Controller) run(ctx context.Context, req FetchRequest) View {
	c.log.Debug("fetch started",
		"request_id", req.RequestID,
		"kind", req.Kind,
		"generation", req.Generation,
		"query", req.Query,
		"page", req.Page)

	res := Fetch(ctx, c.searcher, req)
	if res.Err != nil {
		c.log.Error("fetch failed",
			"request_id", req.RequestID,
			"kind", req.Kind,
			"page", req.Page,
			"err", res.Err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if req.Generation != c.session.Generation {
		c.log.Debug("stale result dropped",
			"request_id", req.RequestID,
			"generation", req.Generation,
			"current", c.session.Generation)
	}
	c.session = c.session.Apply(res)
	return c.session.View(c.selection)
}

// Open selects item for the enlarged view
func (c *Controller) Open(item models.Photo) {
	c.mu.Lock()
	c.selection = c.selection.Open(item)
	c.mu.Unlock()
}

// Close clears the selection
func (c *Controller) Close() {
	c.mu.Lock()
	c.selection = c.selection.Close()
	c.mu.Unlock()
}

// View returns the current presentation snapshot
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.View(c.selection)
}

// Session returns a copy of the current session state
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}
