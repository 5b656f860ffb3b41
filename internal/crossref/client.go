// Package crossref retrieves bibliographic candidates for parsed CV
// records from the Crossref works API.
//
// The client re-scores every retrieved item locally with the similarity
// package; whatever relevance score Crossref assigns is ignored, so the
// ranking stays explainable from title/venue/year strings alone.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"cvcheck/internal/record"
	"cvcheck/internal/similarity"
)

const (
	// BaseURL is the Crossref works endpoint.
	BaseURL = "https://api.crossref.org/works"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit keeps us well inside Crossref's polite-pool guidance.
	RateLimit = 5.0

	// DefaultRows is the number of candidates requested per lookup.
	DefaultRows = 5

	// SourceName labels candidates produced by this client.
	SourceName = "Crossref"
)

// Client is a rate-limited HTTP client for the Crossref works API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
	rows       int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithMailto sets the polite-pool contact address sent with each request.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// WithRows sets how many candidates are requested per lookup.
func WithRows(rows int) ClientOption {
	return func(c *Client) {
		if rows > 0 {
			c.rows = rows
		}
	}
}

// NewClient creates a Crossref client. CROSSREF_MAILTO in the environment
// supplies the polite-pool contact unless WithMailto overrides it.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		rows:       DefaultRows,
	}

	if mailto := os.Getenv("CROSSREF_MAILTO"); mailto != "" {
		c.mailto = mailto
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search retrieves candidates for a record, scores each against the
// record, and returns them ranked descending by composite score.
func (c *Client) Search(ctx context.Context, rec record.PublicationRecord) ([]record.ExternalCandidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL(rec), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	var works worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&works); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return similarity.Rank(mapItems(rec, works.Message.Items)), nil
}

// queryURL builds the works query from the record's title, venue, and
// year, using Crossref's bibliographic free-form search.
func (c *Client) queryURL(rec record.PublicationRecord) string {
	var parts []string
	for _, p := range []string{rec.Title, rec.Venue} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if rec.Year != 0 {
		parts = append(parts, strconv.Itoa(rec.Year))
	}

	q := url.Values{}
	q.Set("query.bibliographic", strings.Join(parts, " "))
	q.Set("rows", strconv.Itoa(c.rows))
	if c.mailto != "" {
		q.Set("mailto", c.mailto)
	}

	return c.baseURL + "?" + q.Encode()
}

func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}
	return nil
}
