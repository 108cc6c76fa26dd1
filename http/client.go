package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/gallery"
	gurl "github.com/fwojciec/gallery/url"
)

// DefaultTimeout is the default timeout for API requests.
const DefaultTimeout = 10 * time.Second

// DefaultRetryDelays returns the backoff delays used when the server reports
// it is unavailable: 250ms, 500ms, 1s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{250 * time.Millisecond, 500 * time.Millisecond, time.Second}
}

// Ensure Client implements gallery.SearchService at compile time.
var _ gallery.SearchService = (*Client)(nil)

// Client implements gallery.SearchService against a remote gallery API.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	delays  []time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for each request.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetryDelays sets the delays between attempts for rate limited or
// unavailable responses. An empty slice disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.delays = delays
	}
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// Search requests one page of results for q.
func (c *Client) Search(ctx context.Context, q gallery.Query) (*gallery.SearchResult, error) {
	var result gallery.SearchResult
	if err := c.get(ctx, gurl.Link(c.baseURL+"/api/search", q), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FindObjectByID retrieves a full object.
func (c *Client) FindObjectByID(ctx context.Context, id int) (*gallery.ArtObject, error) {
	var obj gallery.ArtObject
	if err := c.get(ctx, c.baseURL+"/api/objects/"+strconv.Itoa(id), &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// FindDepartments retrieves the department names.
func (c *Client) FindDepartments(ctx context.Context) ([]string, error) {
	var departments []string
	if err := c.get(ctx, c.baseURL+"/api/departments", &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// get fetches url into v, retrying while the server reports EUNAVAILABLE.
func (c *Client) get(ctx context.Context, url string, v any) error {
	var lastErr error
	for attempt := 0; attempt <= len(c.delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.delays[attempt-1]):
			}
		}

		lastErr = c.do(ctx, url, v)
		if gallery.ErrorCode(lastErr) != gallery.EUNAVAILABLE {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
			body.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return gallery.Errorf(FromErrorStatusCode(resp.StatusCode), "%s", body.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
