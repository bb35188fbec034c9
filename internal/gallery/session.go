// Package gallery holds the search, pagination and selection state of the
// image gallery. State changes are pure functions on value types; network
// work is described by FetchRequest and resolved into a FetchResult.
package gallery

import (
	"github.com/google/uuid"
	"github.com/strrl/unsplash-gallery/pkg/models"
)

// User-facing messages stored in Session.ErrorMessage
const (
	MsgNoResults   = "No images found. Please try a different search term."
	MsgFetchFailed = "Error fetching data. Please try again later."
)

// FetchKind tells the completion handler which branch a result belongs to
type FetchKind int

const (
	KindSearch FetchKind = iota
	KindLoadMore
)

func (k FetchKind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindLoadMore:
		return "load-more"
	default:
		return "unknown"
	}
}

// FetchRequest is one page fetch issued by a session transition.
type FetchRequest struct {
	RequestID  string
	Generation uint64
	Kind       FetchKind
	Query      string
	Page       int
}

// FetchResult is the single resolution of a FetchRequest: either Page or Err.
type FetchResult struct {
	Request FetchRequest
	Page    models.SearchPage
	Err     error
}

// Session is the state of one search query and its accumulated pages.
type Session struct {
	Query string

	// CurrentPage is the next page to request, not the last page fetched.
	// It is advanced right after a successful fetch whenever more pages
	// remain, so after page 1 arrives it already points at page 2.
	CurrentPage int
	TotalPages  int

	Items        []models.Photo
	Loading      bool
	ErrorMessage string

	// Generation identifies the latest StartSearch. Results carrying an
	// older generation are dropped by Apply.
	Generation uint64
}

// NewSession returns an idle session with no query
func NewSession() Session {
	return Session{CurrentPage: 1}
}

// StartSearch resets the session for query and returns the page 1 request.
func (s Session) StartSearch(query string) (Session, FetchRequest) {
	next := Session{
		Query:       query,
		CurrentPage: 1,
		TotalPages:  0,
		Items:       []models.Photo{},
		Loading:     true,
		Generation:  s.Generation + 1,
	}
	return next, FetchRequest{
		RequestID:  uuid.NewString(),
		Generation: next.Generation,
		Kind:       KindSearch,
		Query:      query,
		Page:       1,
	}
}

// LoadMore returns the request for CurrentPage. ok is false, and the session
// is returned unchanged, when CanLoadMore does not hold.
func (s Session) LoadMore() (next Session, req FetchRequest, ok bool) {
	if !s.CanLoadMore() {
		return s, FetchRequest{}, false
	}
	next = s
	next.Loading = true
	next.ErrorMessage = ""
	return next, FetchRequest{
		RequestID:  uuid.NewString(),
		Generation: s.Generation,
		Kind:       KindLoadMore,
		Query:      s.Query,
		Page:       s.CurrentPage,
	}, true
}

// Apply folds a fetch result into the session.
func (s Session) Apply(res FetchResult) Session {
	if res.Request.Generation != s.Generation {
		return s
	}

	next := s
	next.Loading = false

	if res.Err != nil {
		next.ErrorMessage = MsgFetchFailed
		return next
	}

	results := res.Page.Results
	switch res.Request.Kind {
	case KindSearch:
		next.Items = append([]models.Photo{}, results...)
		next.TotalPages = res.Page.TotalPages
		if next.CurrentPage < next.TotalPages {
			next.CurrentPage++
		}
		if len(results) == 0 {
			next.ErrorMessage = MsgNoResults
		}
	case KindLoadMore:
		items := make([]models.Photo, 0, len(s.Items)+len(results))
		items = append(items, s.Items...)
		next.Items = append(items, results...)
		if next.CurrentPage < next.TotalPages {
			next.CurrentPage++
		}
	}
	return next
}

// CanLoadMore reports whether a load-more request may be issued now.
func (s Session) CanLoadMore() bool {
	return len(s.Items) > 0 && !s.Loading && s.CurrentPage < s.TotalPages
}

// HasError reports whether an error message should be shown
func (s Session) HasError() bool {
	return s.ErrorMessage != ""
}

// View is everything the presentation layer needs for one render.
type View struct {
	Query        string
	Items        []models.Photo
	Loading      bool
	ErrorMessage string
	CanLoadMore  bool
	Selection    Selection
}

// View snapshots the session together with the modal selection.
func (s Session) View(sel Selection) View {
	return View{
		Query:        s.Query,
		Items:        s.Items,
		Loading:      s.Loading,
		ErrorMessage: s.ErrorMessage,
		CanLoadMore:  s.CanLoadMore(),
		Selection:    sel,
	}
}
