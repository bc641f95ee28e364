// Package catalogclient consumes the public catalog endpoint. Client is
// the stateless HTTP binding; Session is the stateful browsing loop on
// top of it.
package catalogclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client errors.
var (
	ErrNetworkFailure    = errors.New("catalog request failed")
	ErrMalformedResponse = errors.New("malformed catalog response")
)

// CatalogPath is the endpoint queried by Fetch.
const CatalogPath = "/catalog"

const maxResponseBytes = 4 << 20

// Query is one catalog request. Zero values are sent as-is; use
// DefaultQuery for the values the service would pick.
type Query struct {
	Page     int64
	Limit    int64
	Search   string
	Category string
	SortBy   string
	MinPrice float64
	MaxPrice float64
}

// Default browsing values.
const (
	DefaultLimit    int64   = 9
	DefaultSortBy           = "price-asc"
	DefaultMinPrice float64 = 0
	DefaultMaxPrice float64 = 1000
	CategoryAll             = "all"
)

// DefaultQuery is the first page with no filters.
func DefaultQuery() Query {
	return Query{
		Page:     1,
		Limit:    DefaultLimit,
		Category: CategoryAll,
		SortBy:   DefaultSortBy,
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
	}
}

// Values encodes the query string. An empty search and the "all"
// category are omitted.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.FormatInt(q.Page, 10))
	v.Set("limit", strconv.FormatInt(q.Limit, 10))
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if c := strings.TrimSpace(q.Category); c != "" && !strings.EqualFold(c, CategoryAll) {
		v.Set("category", c)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	v.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	v.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	return v
}

// Key identifies the query for caching. Equivalent queries share a key.
func (q Query) Key() string {
	return q.Values().Encode()
}

// Fetcher loads one catalog page.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) (*Page, error)
}

// Client is the HTTP binding to the catalog endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch requests one page. Transport failures and non-200 answers match
// ErrNetworkFailure; undecodable or invalid bodies match ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context, q Query) (*Page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNetworkFailure, err)
		}
	}

	target := c.baseURL + CatalogPath + "?" + q.Values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrNetworkFailure, err)
	}
	c.logger.Debug("catalog fetched",
		zap.String("query", q.Key()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrNetworkFailure, resp.StatusCode, errorMessage(resp.StatusCode, body))
	}
	return decodePage(body)
}

// errorMessage extracts the service's {"error","details"} body, if any.
func errorMessage(status int, body []byte) string {
	var e struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return http.StatusText(status)
	}
	if e.Details != "" {
		return e.Error + ": " + e.Details
	}
	return e.Error
}
