// Package backend is a thin client for the local processing service. It
// issues one request per call and never retries.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// DefaultBaseURL is where the processing service listens by default.
const DefaultBaseURL = "http://localhost:5000"

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

var (
	// ErrUnreachable wraps transport failures: refused connections, DNS
	// errors and the like.
	ErrUnreachable = errors.New("backend unreachable")
	// ErrStatus is returned, wrapped, for non-2xx responses. The Result still
	// carries the body.
	ErrStatus = errors.New("backend returned an error status")
)

// Result is the outcome of a single request.
type Result struct {
	Route   Route
	Status  int
	Body    []byte
	Elapsed time.Duration
}

// Text returns the body trimmed of surrounding whitespace.
func (r Result) Text() string { return strings.TrimSpace(string(r.Body)) }

// Client talks to the processing service.
type Client struct {
	baseURL string
	http    *http.Client
	log     logr.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another service address.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient injects the HTTP client (useful for testing).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l logr.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New constructs a Client. Timeouts are left to the caller's context.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{},
		log:     logr.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string { return c.baseURL }

// Request calls the route. POST routes send an empty JSON object.
func (c *Client) Request(ctx context.Context, r Route) (Result, error) {
	res := Result{Route: r}
	var body io.Reader
	if r.Method == http.MethodPost {
		body = strings.NewReader("{}")
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return res, fmt.Errorf("build request %s: %w", r.Path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.log.V(1).Info("request", "method", r.Method, "url", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, fmt.Errorf("%w: %s %s: %w", ErrUnreachable, r.Method, r.Path, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, maxBody)); err != nil {
		return res, fmt.Errorf("read %s response: %w", r.Path, err)
	}
	res.Status = resp.StatusCode
	res.Body = buf.Bytes()
	res.Elapsed = time.Since(start)
	c.log.V(1).Info("response", "path", r.Path, "status", res.Status, "bytes", len(res.Body), "elapsed", res.Elapsed.String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return res, fmt.Errorf("%w: %s %s: %s", ErrStatus, r.Method, r.Path, resp.Status)
	}
	return res, nil
}

// Ping checks that the service answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("build ping: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnreachable, c.baseURL, err)
	}
	resp.Body.Close()
	return nil
}
