package wdi

import (
	"net/http"
	"time"

	"github.com/okian/dss/internal/adapters/repository"
	"github.com/okian/dss/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each individual request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryInterval sets the first backoff interval between retries.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

// WithBreakerFailures sets the consecutive failures that open the breaker.
func WithBreakerFailures(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.breakerFailures = uint32(n)
		}
	}
}

// WithConcurrency limits countries fetched in parallel.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithStore caches series in store.
func WithStore(store repository.SeriesStore) Option {
	return func(c *Client) {
		if store != nil {
			c.store = store
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}
