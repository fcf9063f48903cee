package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// ErrEmptyQuery is returned when the query is blank.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrNoResults is returned when the title search matched nothing.
	ErrNoResults = errors.New("no results found")
	// ErrSearchFailed wraps failures of the title search request.
	ErrSearchFailed = errors.New("search request failed")
	// ErrSummaryFailed wraps failures of the summary request.
	ErrSummaryFailed = errors.New("failed to fetch page summary")
)

// Searcher looks up one article for a free-text query.
// This interface is implemented by *Client and can be replaced in tests.
type Searcher interface {
	Lookup(ctx context.Context, query string) (Article, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// Options configure a Client. Zero values use the defaults.
type Options struct {
	RestURL    string
	APIURL     string
	Limit      int
	Timeout    time.Duration
	CacheTTL   time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// Client talks to the encyclopedia REST endpoints.
type Client struct {
	restURL   *url.URL
	apiURL    *url.URL
	http      *http.Client
	userAgent string
	limit     int
	summaries *cache.Cache
}

const (
	defaultRestURL   = "https://en.wikipedia.org/w/rest.php"
	defaultAPIURL    = "https://en.wikipedia.org/api/rest_v1"
	defaultPageURL   = "https://en.wikipedia.org/wiki/"
	defaultUserAgent = "guide/42.0"
	defaultLimit     = 5
	requestTimeout   = 10 * time.Second
	noSummary        = "No summary available."
)

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	restURL, err := parseBaseURL(opts.RestURL, defaultRestURL)
	if err != nil {
		return nil, err
	}
	apiURL, err := parseBaseURL(opts.APIURL, defaultAPIURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		restURL:   restURL,
		apiURL:    apiURL,
		http:      httpClient,
		userAgent: strings.TrimSpace(opts.UserAgent),
		limit:     opts.Limit,
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.limit <= 0 {
		c.limit = defaultLimit
	}
	if opts.CacheTTL > 0 {
		c.summaries = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return c, nil
}

// Lookup runs the title search, takes the provider's top candidate and
// fetches its summary. Candidates are never re-ranked locally.
func (c *Client) Lookup(ctx context.Context, query string) (Article, error) {
	if c == nil {
		return Article{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(query) == "" {
		return Article{}, ErrEmptyQuery
	}

	pages, err := c.SearchTitles(ctx, query, c.limit)
	if err != nil {
		return Article{}, err
	}
	if len(pages) == 0 {
		return Article{}, ErrNoResults
	}

	top := pages[0]
	summary, err := c.Summary(ctx, top.Key)
	if err != nil {
		return Article{}, err
	}
	return buildArticle(top, summary), nil
}

// SearchTitles returns up to limit ranked page candidates for query.
func (c *Client) SearchTitles(ctx context.Context, query string, limit int) ([]Page, error) {
	if limit <= 0 {
		limit = c.limit
	}
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))

	reqURL := c.restURL.JoinPath("v1", "search", "title")
	reqURL.RawQuery = values.Encode()

	var payload SearchResponse
	if err := c.get(ctx, reqURL, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	return payload.Pages, nil
}

// Summary fetches the summary for a canonical page key.
func (c *Client) Summary(ctx context.Context, key string) (Summary, error) {
	if strings.TrimSpace(key) == "" {
		return Summary{}, fmt.Errorf("%w: page key is empty", ErrSummaryFailed)
	}
	if c.summaries != nil {
		if cached, ok := c.summaries.Get(key); ok {
			return cached.(Summary), nil
		}
	}

	reqURL := c.apiURL.JoinPath("page", "summary", url.PathEscape(key))
	var payload Summary
	if err := c.get(ctx, reqURL, &payload); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrSummaryFailed, err)
	}

	if c.summaries != nil {
		c.summaries.SetDefault(key, payload)
	}
	return payload, nil
}

func buildArticle(top Page, summary Summary) Article {
	title := strings.TrimSpace(summary.Title)
	if title == "" {
		title = top.Key
	}

	content := strings.TrimSpace(summary.Extract)
	if content == "" {
		content = plainExcerpt(top.Excerpt)
	}
	if content == "" {
		content = noSummary
	}

	uri := strings.TrimSpace(summary.ContentURLs.Desktop.Page)
	if uri == "" {
		uri = defaultPageURL + url.PathEscape(top.Key)
	}

	return Article{
		Title:   title,
		Content: content,
		Sources: []Source{{Title: title, URI: uri}},
	}
}

func (c *Client) get(ctx context.Context, reqURL *url.URL, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api %s returned status %d", reqURL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw, fallback string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = fallback
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
