package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/strrl/unsplash-gallery/pkg/models"
)

// ErrMissingAccessKey is returned before any I/O when no access key is set.
var ErrMissingAccessKey = errors.New("missing Unsplash access key (set UNSPLASH_ACCESS_KEY)")

// StatusError reports a non-2xx response from the API
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unsplash: http %d", e.Code)
	}
	return fmt.Sprintf("unsplash: http %d: %s", e.Code, e.Body)
}

// Options configures a Client
type Options struct {
	AccessKey     string
	BaseURL       string
	PerPage       int
	Orientation   string
	ContentFilter string
	Timeout       time.Duration
	UserAgent     string

	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client performs search requests against the Unsplash API
type Client struct {
	http      *http.Client
	builder   Builder
	accessKey string
	userAgent string
	log       *slog.Logger
}

// NewClient creates a new client
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "unsplash-gallery"
	}

	return &Client{
		http: httpClient,
		builder: Builder{
			BaseURL:       opts.BaseURL,
			PerPage:       opts.PerPage,
			Orientation:   opts.Orientation,
			ContentFilter: opts.ContentFilter,
		},
		accessKey: opts.AccessKey,
		userAgent: userAgent,
		log:       logger.With("component", "unsplash"),
	}
}

// Builder returns the query builder the client uses
func (c *Client) Builder() Builder {
	return c.builder
}

// SearchQuery builds the request for query/page and performs it.
func (c *Client) SearchQuery(ctx context.Context, query string, page int) (models.SearchPage, error) {
	return c.Search(ctx, c.builder.Build(query, page))
}

// Search performs one search request and decodes the response page.
func (c *Client) Search(ctx context.Context, r Request) (models.SearchPage, error) {
	if c.accessKey == "" {
		return models.SearchPage{}, ErrMissingAccessKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL(), nil)
	if err != nil {
		return models.SearchPage{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "url", r.URL(), "err", err)
		return models.SearchPage{}, fmt.Errorf("failed to fetch %s: %w", r.Endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("response",
		"status", resp.StatusCode,
		"query", r.Query(),
		"page", r.Page(),
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.SearchPage{}, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var page models.SearchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return models.SearchPage{}, fmt.Errorf("failed to decode search response: %w", err)
	}
	if page.Results == nil {
		page.Results = []models.Photo{}
	}
	return page, nil
}
