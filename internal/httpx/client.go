// Package httpx wraps outbound provider calls with bounded retries and
// exponential backoff. Every provider-facing package in this repository goes
// through a Client from this package.
package httpx

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

const (
	// defaultTimeout bounds a single attempt, not the whole retry sequence.
	defaultTimeout = 6 * time.Second

	// defaultRetries is the number of additional attempts after the first.
	defaultRetries = 2

	// defaultBackoff is the base delay; attempt n waits backoff * 2^n.
	defaultBackoff = 300 * time.Millisecond
)

// Params holds URL query parameters for a GET call.
type Params map[string]string

// StatusError is returned for a non-retryable HTTP status (4xx). The
// provider answered; retrying would not change the outcome.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpx: %s: status %d: %s", e.URL, e.StatusCode, e.Body)
}

// RetryExhaustedError is returned when every attempt failed at the transport
// level (network error, timeout, or 5xx). Err holds the last failure.
type RetryExhaustedError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("httpx: %s: %d attempts exhausted: %v", e.URL, e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Err }

// Client performs JSON HTTP calls with the retry policy from the package doc.
// The zero value is not usable; construct with New.
type Client struct {
	rc      *resty.Client
	retries int
	backoff time.Duration
	// sleep waits out a backoff delay unless ctx ends first. Swapped out
	// in tests so backoff delays don't slow the suite.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.rc.SetTimeout(d) }
}

// WithRetries sets how many additional attempts follow a transport failure.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// WithBackoff sets the base backoff delay.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// withSleep replaces the inter-attempt delay function. Test hook only.
func withSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// New creates a Client with the default timeout, retry count and backoff.
func New(opts ...Option) *Client {
	c := &Client{
		rc:      resty.New().SetTimeout(defaultTimeout),
		retries: defaultRetries,
		backoff: defaultBackoff,
		sleep:   sleepCtx,
	}
	for _, o := range opts {
		o(c)
	}
	// Retries are driven by the loop in do; resty must not add its own.
	c.rc.SetRetryCount(0)
	return c
}

// Close releases the underlying transport resources.
func (c *Client) Close() error { return c.rc.Close() }

// GetJSON performs a GET and unmarshals a 2xx response body into out.
//
// Transport failures and 5xx responses are retried up to the configured
// count with exponential backoff; when all attempts fail the error is a
// *RetryExhaustedError. A 4xx response is a *StatusError and is never
// retried. A valid-but-empty provider payload (e.g. a zero-results status
// inside a 200 body) is success here; interpreting it is the caller's job.
func (c *Client) GetJSON(ctx context.Context, url string, params Params, out any) error {
	return c.do(ctx, url, func() (*resty.Response, error) {
		return c.rc.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetResult(out).
			Get(url)
	})
}

// PostJSON performs a POST with a JSON body plus optional headers and
// unmarshals a 2xx response into out. Retry semantics match GetJSON.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, body, out any) error {
	return c.do(ctx, url, func() (*resty.Response, error) {
		return c.rc.R().
			SetContext(ctx).
			SetHeaders(headers).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			SetResult(out).
			Post(url)
	})
}

func (c *Client) do(ctx context.Context, url string, attempt func() (*resty.Response, error)) error {
	var lastErr error
	for i := 0; i <= c.retries; i++ {
		if i > 0 {
			delay := c.backoff * (1 << (i - 1))
			if err := c.sleep(ctx, delay); err != nil {
				return &RetryExhaustedError{URL: url, Attempts: i, Err: err}
			}
		}

		resp, err := attempt()
		if err != nil {
			lastErr = err
			continue
		}

		code := resp.StatusCode()
		switch {
		case code >= 200 && code < 300:
			return nil
		case code >= 500:
			lastErr = fmt.Errorf("status %d: %s", code, resp.String())
			continue
		default:
			// 4xx: the provider rejected the request. Do not retry.
			return &StatusError{URL: url, StatusCode: code, Body: resp.String()}
		}
	}
	return &RetryExhaustedError{URL: url, Attempts: c.retries + 1, Err: lastErr}
}
