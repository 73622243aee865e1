package s2

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Semantic Scholar Graph API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is one request per second, the unauthenticated allowance.
	RateLimit = 1.0

	// DefaultPaperFields are the fields needed to build a reference.
	DefaultPaperFields = "title,authors,year,venue,journal,externalIds,url,publicationDate"

	// DefaultSearchLimit is used when Search is given a non-positive limit.
	DefaultSearchLimit = 10

	// MaxSearchLimit is the largest page the search endpoint serves.
	MaxSearchLimit = 100
)

// Client is a rate-limited HTTP client for the Semantic Scholar Graph API.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithRateLimit overrides the request rate in requests per second.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a new Semantic Scholar client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// checkHTTPErrors returns an *APIError for any non-2xx reply.
func checkHTTPErrors(resp *http.Response, paperID string) error {
	if resp.StatusCode < 400 {
		return nil
	}
	return newAPIError(resp, paperID, time.Now())
}

// get performs a rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, paperID string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("s2 request", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if err := checkHTTPErrors(resp, paperID); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// GetPaper fetches a paper by a parsed identifier.
func (c *Client) GetPaper(ctx context.Context, id PaperIdentifier) (*Paper, error) {
	query := url.Values{"fields": {DefaultPaperFields}}

	var paper Paper
	if err := c.get(ctx, "/paper/"+escapeID(id.String()), query, id.String(), &paper); err != nil {
		return nil, err
	}
	if paper.PaperID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &paper, nil
}

// escapeID path-escapes an identifier, leaving DOI slashes literal.
func escapeID(id string) string {
	return strings.ReplaceAll(url.PathEscape(id), "%2F", "/")
}

// LookupDOI fetches a paper by DOI. The DOI may carry a doi.org prefix.
func (c *Client) LookupDOI(ctx context.Context, doi string) (*Paper, error) {
	return c.GetPaper(ctx, PaperIdentifier{Type: IDTypeDOI, Value: NormalizeDOI(doi)})
}

// Search runs a keyword search and returns up to limit papers.
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"fields": {DefaultPaperFields},
	}

	var result SearchResponse
	if err := c.get(ctx, "/paper/search", params, "", &result); err != nil {
		return nil, err
	}
	if result.Data == nil {
		result.Data = []Paper{}
	}
	return &result, nil
}
