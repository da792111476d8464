package client

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

	"github.com/jonwraymond/healthmock/health"
	"github.com/jonwraymond/healthmock/resilience"
)

var (
	// ErrUnexpectedStatus is returned for a status code the endpoint does
	// not document.
	ErrUnexpectedStatus = errors.New("client: unexpected status")

	// ErrInvalidBaseURL is returned by New for a URL without scheme or host.
	ErrInvalidBaseURL = errors.New("client: invalid base url")
)

// StatusError carries the response of an undocumented status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: %d", ErrUnexpectedStatus, e.Code)
	}
	return fmt.Sprintf("%v: %d: %s", ErrUnexpectedStatus, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// transportError marks a failure to get any HTTP response.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// IsTransportError reports whether err means no response was received.
func IsTransportError(err error) bool {
	var te *transportError
	return errors.As(err, &te)
}

// ToggleResult is the decoded toggle confirmation. Component is empty when
// the server runs the single profile.
type ToggleResult struct {
	Component string `json:"component,omitempty"`
	Healthy   bool   `json:"healthy"`
}

// Client talks to one mock server.
type Client struct {
	base string
	http *http.Client
	exec *resilience.Executor
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Default: a client with no overall
// timeout; attempts are bounded by the executor.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithExecutor replaces the default executor (3 attempts, 2s per attempt).
func WithExecutor(exec *resilience.Executor) Option {
	return func(c *Client) {
		c.exec = exec
	}
}

// New creates a client for baseURL, e.g. "http://127.0.0.1:18080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{base: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.exec == nil {
		c.exec = DefaultExecutor()
	}
	return c, nil
}

// DefaultExecutor retries transport errors up to three attempts, each
// bounded by two seconds.
func DefaultExecutor() *resilience.Executor {
	return resilience.NewExecutor(
		resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     time.Second,
			Jitter:       true,
			RetryIf:      IsTransportError,
		})),
		resilience.WithTimeout(2*time.Second),
	)
}

// Toggle sets the health flag of component. An empty component addresses
// the server's default component.
func (c *Client) Toggle(ctx context.Context, component string, healthy bool) (ToggleResult, error) {
	q := url.Values{}
	q.Set("healthy", strconv.FormatBool(healthy))
	if component != "" {
		q.Set("component", component)
	}

	code, body, err := c.get(ctx, "/toggle?"+q.Encode())
	if err != nil {
		return ToggleResult{}, err
	}
	if code != http.StatusOK {
		return ToggleResult{}, &StatusError{Code: code, Body: string(body)}
	}

	var result ToggleResult
	if err := json.Unmarshal(body, &result); err != nil {
		return ToggleResult{}, fmt.Errorf("client: decode toggle response: %w", err)
	}
	return result, nil
}

// Check probes component. An empty component probes /health.
func (c *Client) Check(ctx context.Context, component string) (health.Status, error) {
	path := "/health"
	if component != "" {
		path += "/" + url.PathEscape(component)
	}

	code, body, err := c.get(ctx, path)
	if err != nil {
		return health.StatusUnhealthy, err
	}

	switch code {
	case http.StatusOK:
		return health.StatusHealthy, nil
	case http.StatusInternalServerError:
		return health.StatusUnhealthy, nil
	default:
		return health.StatusUnhealthy, &StatusError{Code: code, Body: string(body)}
	}
}

// Page fetches path, which may carry a query, and returns the status code.
func (c *Client) Page(ctx context.Context, path string) (int, error) {
	code, _, err := c.get(ctx, path)
	return code, err
}

func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	var (
		code int
		body []byte
	)

	err := c.exec.Execute(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
		if err != nil {
			return fmt.Errorf("client: build request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return &transportError{err: err}
		}
		defer func() { _ = resp.Body.Close() }()

		b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return &transportError{err: err}
		}

		code, body = resp.StatusCode, b
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return code, body, nil
}
