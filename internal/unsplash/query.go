package unsplash

import (
	"net/url"
	"strconv"
)

const (
	// DefaultBaseURL is the Unsplash API root
	DefaultBaseURL = "https://api.unsplash.com"
	// DefaultPerPage matches the page size the web gallery used
	DefaultPerPage = 12
	// MaxPerPage is the largest page size the API accepts
	MaxPerPage = 30

	searchPath = "/search/photos"
)

// Request describes one search call: the endpoint and its query parameters.
type Request struct {
	Endpoint string
	Params   url.Values
}

// URL returns the full request URL with the parameters encoded.
func (r Request) URL() string {
	if len(r.Params) == 0 {
		return r.Endpoint
	}
	return r.Endpoint + "?" + r.Params.Encode()
}

// Query returns the search term carried by the request
func (r Request) Query() string {
	return r.Params.Get("query")
}

// Page returns the 1-based page carried by the request, or 0 if absent
func (r Request) Page() int {
	n, err := strconv.Atoi(r.Params.Get("page"))
	if err != nil {
		return 0
	}
	return n
}

// Builder turns a query and a page number into a Request. It holds only
// static settings, so Build has no side effects.
type Builder struct {
	BaseURL       string
	PerPage       int
	Orientation   string
	ContentFilter string
}

// Build constructs the search request for query at page. The page is passed
// through as given.
func (b Builder) Build(query string, page int) Request {
	base := b.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	perPage := b.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	if b.Orientation != "" {
		params.Set("orientation", b.Orientation)
	}
	if b.ContentFilter != "" {
		params.Set("content_filter", b.ContentFilter)
	}

	return Request{
		Endpoint: base + searchPath,
		Params:   params,
	}
}
