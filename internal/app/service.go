// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/dss/internal/adapters/countries"
	"github.com/okian/dss/internal/adapters/ingest"
	"github.com/okian/dss/internal/adapters/repository"
	"github.com/okian/dss/internal/adapters/wdi"
	"github.com/okian/dss/internal/domain/engine"
	"github.com/okian/dss/internal/domain/model"
	"github.com/okian/dss/internal/domain/types"
	"github.com/okian/dss/pkg/logger"
	"github.com/okian/dss/pkg/metrics"
)

// Comparison sources used as metric labels.
const (
	SourceAPI    = "api"
	SourceUpload = "upload"
	SourceRows   = "rows"
)

// Source provides engine rows for a list of country names.
type Source interface {
	Fetch(ctx context.Context, names []string, year string) (*wdi.FetchResult, error)
	Close() error
}

// Service implements the API dependencies for the comparison system.
type Service struct {
	mu sync.RWMutex

	// Core components
	source Source
	store  repository.SeriesStore

	// Configuration
	maxCountries     int
	baseURL          string
	upstreamTimeout  time.Duration
	upstreamRetries  int
	breakerFailures  int
	fetchConcurrency int
	cacheBackend     string
	cacheSize        int
	cacheTTL         time.Duration
	redisAddr        string
	redisPassword    string
	redisDB          int

	// State
	started      bool
	comparisons  atomic.Int64
	failures     atomic.Int64
	lastDuration atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource replaces the upstream indicator source.
func WithSource(src Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore replaces the series cache built at Start.
func WithStore(store repository.SeriesStore) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMaxCountries caps countries per comparison.
func WithMaxCountries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCountries = n
		}
	}
}

// WithUpstream configures the WDI client built at Start.
func WithUpstream(baseURL string, timeout time.Duration, retries, breakerFailures int) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.baseURL = baseURL
		}
		if timeout > 0 {
			s.upstreamTimeout = timeout
		}
		if retries >= 0 {
			s.upstreamRetries = retries
		}
		if breakerFailures > 0 {
			s.breakerFailures = breakerFailures
		}
	}
}

// WithFetchConcurrency limits countries fetched in parallel.
func WithFetchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fetchConcurrency = n
		}
	}
}

// WithCache selects the series cache backend: memory, redis or none.
func WithCache(backend string, size int, ttl time.Duration) Option {
	return func(s *Service) {
		if backend != "" {
			s.cacheBackend = backend
		}
		if size > 0 {
			s.cacheSize = size
		}
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithRedis sets the Redis connection used by the redis cache backend.
func WithRedis(addr, password string, db int) Option {
	return func(s *Service) {
		s.redisAddr = addr
		s.redisPassword = password
		s.redisDB = db
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxCountries:     6,
		baseURL:          "https://api.worldbank.org/v2",
		upstreamTimeout:  10 * time.Second,
		upstreamRetries:  3,
		breakerFailures:  5,
		fetchConcurrency: 4,
		cacheBackend:     repository.BackendMemory,
		cacheSize:        1024,
		cacheTTL:         6 * time.Hour,
		redisAddr:        "localhost:6379",
		logger:           nil, // replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the series cache and the upstream client.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting comparison service...")

	if s.source == nil {
		if s.store == nil {
			store, err := s.buildStore(ctx)
			if err != nil {
				return err
			}
			s.store = store
		}
		s.source = wdi.NewClient(s.baseURL,
			wdi.WithTimeout(s.upstreamTimeout),
			wdi.WithRetries(s.upstreamRetries),
			wdi.WithBreakerFailures(s.breakerFailures),
			wdi.WithConcurrency(s.fetchConcurrency),
			wdi.WithStore(s.store),
			wdi.WithLogger(s.logger.Named("wdi")),
		)
	}

	s.started = true
	s.logger.Info(ctx, "comparison service started",
		logger.String("upstream", s.baseURL),
		logger.String("cache", s.cacheName()),
		logger.Int("maxCountries", s.maxCountries),
		logger.Int("fetchConcurrency", s.fetchConcurrency),
	)
	return nil
}

func (s *Service) buildStore(ctx context.Context) (repository.SeriesStore, error) {
	switch s.cacheBackend {
	case repository.BackendRedis:
		store, err := repository.NewRedisStore(ctx, s.redisAddr, s.redisPassword, s.redisDB,
			repository.WithTTL(s.cacheTTL))
		if err != nil {
			return nil, fmt.Errorf("start series cache: %w", err)
		}
		return store, nil
	case repository.BackendNone:
		return repository.NopStore{}, nil
	default:
		return repository.NewMemoryStore(repository.WithSize(s.cacheSize), repository.WithTTL(s.cacheTTL)), nil
	}
}

func (s *Service) cacheName() string {
	if s.store == nil {
		return "external"
	}
	return s.store.Backend()
}

// Stop releases the upstream client and its cache.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping comparison service...")

	if s.source != nil {
		if err := s.source.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing indicator source failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "comparison service stopped")
}

func (s *Service) upstream() (Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.source == nil {
		return nil, ErrNotStarted
	}
	return s.source, nil
}

// Compare fetches indicators for the named countries and runs the engine.
func (s *Service) Compare(ctx context.Context, names []string, year string) (*types.Payload, error) {
	start := time.Now()
	year = strings.TrimSpace(year)

	requested := cleanNames(names)
	if err := s.validateNames(requested); err != nil {
		s.recordOutcome(SourceAPI, "rejected", start)
		return nil, err
	}

	src, err := s.upstream()
	if err != nil {
		return nil, err
	}

	fetched, err := src.Fetch(ctx, requested, year)
	if err != nil {
		s.failures.Add(1)
		s.recordOutcome(SourceAPI, "upstream_error", start)
		s.logger.Error(ctx, "indicator fetch failed",
			logger.Strings("countries", requested), logger.String("year", year), logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	payload := s.build(fetched.Rows, types.Request{Countries: requested, Year: year})
	payload.Meta.Resolved = &fetched.Meta
	s.recordSuccess(ctx, SourceAPI, start, len(payload.Comparison))
	return payload, nil
}

// CompareUpload parses an uploaded CSV or JSON file and runs the engine.
func (s *Service) CompareUpload(ctx context.Context, data []byte, filename, mimetype, year string) (*types.Payload, error) {
	start := time.Now()
	year = strings.TrimSpace(year)

	rows, err := ingest.Parse(data, filename, mimetype, year)
	if err != nil {
		reason := "malformed"
		if errors.Is(err, ingest.ErrNoUsableRows) {
			reason = "no_rows"
		}
		metrics.RecordUploadError(reason)
		s.recordOutcome(SourceUpload, "rejected", start)
		return nil, fmt.Errorf("%w: %w", ErrInvalidUpload, err)
	}
	metrics.RecordUploadRows(len(rows))

	payload := s.build(rows, types.Request{Year: year, Upload: true, Filename: filename})
	s.recordSuccess(ctx, SourceUpload, start, len(payload.Comparison))
	return payload, nil
}

// CompareRows runs the engine over rows supplied by the caller.
func (s *Service) CompareRows(ctx context.Context, rows []model.InputRow) *types.Payload {
	start := time.Now()
	payload := s.build(rows, types.Request{})
	s.recordSuccess(ctx, SourceRows, start, len(payload.Comparison))
	return payload
}

func (s *Service) build(rows []model.InputRow, req types.Request) *types.Payload {
	return &types.Payload{
		Raw:    rows,
		Result: engine.Compare(rows),
		Meta:   types.Meta{Request: req},
	}
}

// Resolve returns the ISO-3 code for a country name.
func (s *Service) Resolve(name string) (string, bool) {
	return countries.Resolve(name)
}

// Aliases lists every known country alias.
func (s *Service) Aliases() []countries.Alias {
	return countries.Aliases()
}

func (s *Service) validateNames(names []string) error {
	if len(names) == 0 {
		return ErrNoCountries
	}
	if len(names) > s.maxCountries {
		return fmt.Errorf("%w: %d requested, at most %d allowed", ErrTooManyCountries, len(names), s.maxCountries)
	}
	var unknown []string
	for _, name := range names {
		if _, ok := countries.Resolve(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return &UnknownCountriesError{Names: unknown}
	}
	return nil
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func (s *Service) recordSuccess(ctx context.Context, source string, start time.Time, size int) {
	elapsed := time.Since(start)
	s.comparisons.Add(1)
	s.lastDuration.Store(elapsed.Microseconds())
	s.recordOutcome(source, "ok", start)
	metrics.RecordComparisonSize(size)
	if s.logger != nil {
		s.logger.Debug(ctx, "comparison served",
			logger.String("source", source), logger.Int("countries", size), logger.Duration("elapsed", elapsed))
	}
}

func (s *Service) recordOutcome(source, outcome string, start time.Time) {
	metrics.RecordComparison(source, outcome, float64(time.Since(start).Microseconds())/1000)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"maxCountries":     s.maxCountries,
		"fetchConcurrency": s.fetchConcurrency,
		"comparisons":      s.comparisons.Load(),
		"upstreamFailures": s.failures.Load(),
		"lastDurationMs":   float64(s.lastDuration.Load()) / 1000,
	}
	if s.store != nil {
		stats["cacheBackend"] = s.store.Backend()
		stats["cacheEntries"] = s.store.Len(context.Background())
	}
	return stats
}
