package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// CatalogFetcher defines the catalog operations the UI depends on.
// This interface is implemented by *Client and can be used for testing.
type CatalogFetcher interface {
	FetchAll(ctx context.Context) ([]Book, error)
	FetchBook(ctx context.Context, id BookID) (Book, error)
	Create(ctx context.Context, draft Draft) (Book, error)
}

// Ensure Client implements CatalogFetcher at compile time.
var _ CatalogFetcher = (*Client)(nil)

// Client talks to the catalog REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

const (
	// DefaultBaseURL is where the catalog API listens unless configured otherwise.
	DefaultBaseURL = "http://localhost:3000"

	defaultUserAgent = "shelf/0.1"
	defaultTimeout   = 5 * time.Second
	defaultRPS       = 10
	defaultBurst     = 5
	maxPayloadBytes  = 8 << 20
	booksPath        = "books"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRateLimit caps outbound requests per second. rps <= 0 disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the catalog rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		limiter:   rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized catalog root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchAll retrieves the whole catalog in server order.
func (c *Client) FetchAll(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, &NetworkError{Op: "fetch catalog", Method: http.MethodGet, Err: ErrNilClient}
	}
	var books []Book
	err := c.do(ctx, "fetch catalog", http.MethodGet, []string{booksPath}, nil, func(data []byte) error {
		var err error
		books, err = decodeBooks(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// FetchBook retrieves a single catalog entry.
func (c *Client) FetchBook(ctx context.Context, id BookID) (Book, error) {
	if c == nil {
		return Book{}, &NetworkError{Op: "fetch book", Method: http.MethodGet, Err: ErrNilClient}
	}
	if strings.TrimSpace(id.String()) == "" {
		return Book{}, fmt.Errorf("book id required")
	}
	var book Book
	err := c.do(ctx, "fetch book", http.MethodGet, []string{booksPath, url.PathEscape(id.String())}, nil, func(data []byte) error {
		var err error
		book, err = decodeBook(data)
		return err
	})
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// Create submits a new catalog entry and returns the record the server stored.
func (c *Client) Create(ctx context.Context, draft Draft) (Book, error) {
	if c == nil {
		return Book{}, &NetworkError{Op: "add book", Method: http.MethodPost, Err: ErrNilClient}
	}
	if err := draft.Validate(); err != nil {
		return Book{}, fmt.Errorf("invalid book: %w", err)
	}
	var book Book
	err := c.do(ctx, "add book", http.MethodPost, []string{booksPath}, draft.normalize(), func(data []byte) error {
		var err error
		book, err = decodeBook(data)
		return err
	})
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

func (c *Client) do(ctx context.Context, op, method string, segments []string, body any, decode func([]byte) error) error {
	reqURL := c.baseURL.JoinPath(segments...)
	requestID := uuid.NewString()
	fail := func(status int, err error) error {
		netErr := &NetworkError{Op: op, Method: method, URL: reqURL.String(), StatusCode: status, Err: err}
		log.Printf("catalog: %v (request %s)", netErr, requestID)
		return netErr
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fail(0, fmt.Errorf("rate limit: %w", err))
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail(0, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fail(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes+1))
	if err != nil {
		return fail(0, fmt.Errorf("read response: %w", err))
	}
	if len(data) > maxPayloadBytes {
		return fail(0, errors.New("response too large"))
	}
	if err := decode(data); err != nil {
		return fail(0, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
