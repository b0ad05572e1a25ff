// Package repository caches upstream indicator series keyed by country and indicator.
package repository

import (
	"context"
	"strings"

	"github.com/okian/dss/internal/domain/model"
)

// Backend names reported by SeriesStore.Backend and used as metric labels.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// SeriesStore provides read/write access to cached indicator series.
type SeriesStore interface {
	// Get returns the cached series for key. The boolean reports a hit.
	Get(ctx context.Context, key string) ([]model.Observation, bool, error)

	// Put stores series under key, replacing any previous value.
	Put(ctx context.Context, key string, series []model.Observation) error

	// Len returns the number of entries currently cached, or -1 when unknown.
	Len(ctx context.Context) int

	// Backend names the implementation.
	Backend() string

	// Close releases backend resources.
	Close() error
}

// SeriesKey builds the cache key for one country and indicator.
func SeriesKey(iso3, indicator string) string {
	return strings.ToUpper(iso3) + "|" + indicator
}

// NopStore never caches anything.
type NopStore struct{}

// Get always misses.
func (NopStore) Get(context.Context, string) ([]model.Observation, bool, error) {
	return nil, false, nil
}

// Put discards the series.
func (NopStore) Put(context.Context, string, []model.Observation) error { return nil }

// Len is always zero.
func (NopStore) Len(context.Context) int { return 0 }

// Backend returns BackendNone.
func (NopStore) Backend() string { return BackendNone }

// Close is a no-op.
func (NopStore) Close() error { return nil }
