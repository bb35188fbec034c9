package gallery

import (
	"context"
	"fmt"

	"github.com/strrl/unsplash-gallery/pkg/models"
)

// Searcher fetches one page of results for a query.
type Searcher interface {
	SearchQuery(ctx context.Context, query string, page int) (models.SearchPage, error)
}

// SearcherFunc adapts a function to Searcher
type SearcherFunc func(ctx context.Context, query string, page int) (models.SearchPage, error)

// SearchQuery calls f
func (f SearcherFunc) SearchQuery(ctx context.Context, query string, page int) (models.SearchPage, error) {
	return f(ctx, query, page)
}

// Fetch runs req against s and always resolves to exactly one result. A
// panicking searcher is reported as an error rather than crashing the caller.
func Fetch(ctx context.Context, s Searcher, req FetchRequest) (res FetchResult) {
	res.Request = req
	defer func() {
		if r := recover(); r != nil {
			res.Page = models.SearchPage{}
			res.Err = fmt.Errorf("search panicked: %v", r)
		}
	}()

	page, err := s.SearchQuery(ctx, req.Query, req.Page)
	if err != nil {
		res.Err = err
		return res
	}
	res.Page = page
	return res
}
