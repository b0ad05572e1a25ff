package wdi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/okian/dss/internal/adapters/repository"
	"github.com/okian/dss/internal/domain/model"
	"github.com/okian/dss/pkg/logger"
	"github.com/okian/dss/pkg/metrics"
)

const maxResponseBytes = 32 << 20

// errCallerDone marks a request cut short by the caller's context rather than
// by the upstream or the client's own timeout.
var errCallerDone = errors.New("request abandoned by caller")

// Client reads indicator series from the WDI API.
type Client struct {
	baseURL         string
	http            *http.Client
	timeout         time.Duration
	retries         int
	retryInterval   time.Duration
	breakerFailures uint32
	concurrency     int
	store           repository.SeriesStore
	breaker         *gobreaker.CircuitBreaker
	log             logger.Logger
}

// NewClient creates a Client rooted at baseURL, e.g. https://api.worldbank.org/v2.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		http:            &http.Client{},
		timeout:         10 * time.Second,
		retries:         3,
		retryInterval:   250 * time.Millisecond,
		breakerFailures: 5,
		concurrency:     4,
		store:           repository.NopStore{},
		log:             logger.Named("wdi"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "wdi",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.UpdateBreakerState(int(to))
			c.log.Warn(context.Background(), "circuit breaker state changed",
				logger.String("breaker", name), logger.String("from", from.String()), logger.String("to", to.String()))
		},
		// Client errors and abandoned requests say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			if errors.Is(err, errCallerDone) || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return !se.Temporary()
			}
			return err == nil
		},
	})
	return c
}

// Series returns the observations of indicator for iso3, newest first as
// served upstream. Cached series are returned without a request.
func (c *Client) Series(ctx context.Context, iso3, indicator string) ([]model.Observation, error) {
	key := repository.SeriesKey(iso3, indicator)
	if cached, ok, err := c.store.Get(ctx, key); err != nil {
		c.log.Warn(ctx, "series cache read failed", logger.String("key", key), logger.Error(err))
	} else if ok {
		return cached, nil
	}

	series, err := c.fetchWithRetry(ctx, iso3, indicator)
	if err != nil {
		return nil, err
	}

	if err := c.store.Put(ctx, key, series); err != nil {
		c.log.Warn(ctx, "series cache write failed", logger.String("key", key), logger.Error(err))
	}
	return series, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, iso3, indicator string) ([]model.Observation, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryInterval
	eb.MaxElapsedTime = 0
	bo := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.retries)), ctx)

	var series []model.Observation
	op := func() error {
		out, err := c.breaker.Execute(func() (interface{}, error) {
			out, err := c.fetch(ctx, iso3, indicator)
			if err != nil && ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", errCallerDone, err)
			}
			return out, err
		})
		if err != nil {
			var se *StatusError
			switch {
			case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
				return backoff.Permanent(fmt.Errorf("%w: %w", ErrUpstream, err))
			case errors.As(err, &se) && !se.Temporary():
				return backoff.Permanent(err)
			case errors.Is(err, ErrDecodeResponse), ctx.Err() != nil:
				return backoff.Permanent(err)
			}
			return err
		}
		series = out.([]model.Observation)
		return nil
	}
	notify := func(err error, wait time.Duration) {
		metrics.RecordUpstreamRetry()
		c.log.Debug(ctx, "retrying indicator request",
			logger.String("iso3", iso3), logger.String("indicator", indicator),
			logger.Duration("wait", wait), logger.Error(err))
	}

	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		if !errors.Is(err, ErrUpstream) {
			err = fmt.Errorf("%w: %s %s: %w", ErrUpstream, iso3, indicator, err)
		}
		return nil, err
	}
	return series, nil
}

func (c *Client) fetch(ctx context.Context, iso3, indicator string) ([]model.Observation, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.seriesURL(iso3, indicator)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordUpstreamRequest(indicator, "transport_error", elapsed)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordUpstreamRequest(indicator, strconv.Itoa(resp.StatusCode), elapsed)
		return nil, &StatusError{URL: u, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		metrics.RecordUpstreamRequest(indicator, "read_error", elapsed)
		return nil, err
	}
	series, err := DecodeSeries(body)
	if err != nil {
		metrics.RecordUpstreamRequest(indicator, "decode_error", elapsed)
		return nil, err
	}
	metrics.RecordUpstreamRequest(indicator, "ok", elapsed)
	return series, nil
}

func (c *Client) seriesURL(iso3, indicator string) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("per_page", strconv.Itoa(defaultPerPage))
	return fmt.Sprintf("%s/country/%s/indicator/%s?%s",
		c.baseURL, url.PathEscape(iso3), url.PathEscape(indicator), q.Encode())
}

// Close releases the series cache.
func (c *Client) Close() error {
	return c.store.Close()
}
