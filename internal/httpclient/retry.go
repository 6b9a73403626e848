// Package httpclient wraps net/http with the bounded retry-and-backoff
// policy every external call in this service goes through.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"seopilot/internal/logger"
)

// Retriable statuses: rate limiting and transient upstream failures. Any
// other 4xx aborts immediately without retry.
var defaultRetriable = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

type Client struct {
	httpClient  *http.Client
	logger      *logger.Logger
	maxAttempts int
	baseDelay   time.Duration
	factor      float64
	retriable   map[int]bool
}

type Option func(*Client)

func WithMaxAttempts(n int) Option {
	return func(c *Client) { c.maxAttempts = n }
}

func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) { c.baseDelay = d }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func New(log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:      log,
		maxAttempts: 3,
		baseDelay:   600 * time.Millisecond,
		factor:      2.0,
		retriable:   defaultRetriable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do issues the request, retrying retriable statuses and network errors with
// exponential backoff. The request body, if any, must be supplied as bytes so
// it can be replayed across attempts. The response body is fully read and
// returned.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (int, []byte, error) {
	delay := c.baseDelay
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to create request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.logger.Warn("HTTP %s %s attempt %d: %v", method, url, attempt, err)
		} else {
			respBody, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("failed to read response: %w", readErr)
			} else if resp.StatusCode < 400 {
				return resp.StatusCode, respBody, nil
			} else if !c.retriable[resp.StatusCode] {
				return resp.StatusCode, respBody, fmt.Errorf("HTTP %s %s: status %d", method, url, resp.StatusCode)
			} else {
				lastErr = fmt.Errorf("HTTP %s %s: status %d", method, url, resp.StatusCode)
				c.logger.Warn("HTTP %s %s attempt %d: status %d", method, url, attempt, resp.StatusCode)
				if resp.StatusCode == http.StatusTooManyRequests {
					if after := parseRetryAfter(resp.Header.Get("Retry-After")); after > 0 {
						delay = after
					}
				}
			}
		}

		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return 0, nil, ctx.Err()
		}
		delay = time.Duration(float64(delay) * c.factor)
	}
	return 0, nil, fmt.Errorf("all %d attempts failed: %w", c.maxAttempts, lastErr)
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return 0
}
