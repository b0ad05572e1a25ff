package repository

import (
	"context"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/okian/dss/internal/domain/model"
	"github.com/okian/dss/pkg/metrics"
)

// MemoryStore is a size-bounded LRU with per-entry expiry.
type MemoryStore struct {
	lru *expirable.LRU[string, []model.Observation]
}

// NewMemoryStore creates an in-process series cache.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore{
		lru: expirable.NewLRU[string, []model.Observation](o.size, nil, o.ttl),
	}
}

// Get returns a copy of the cached series.
func (s *MemoryStore) Get(_ context.Context, key string) ([]model.Observation, bool, error) {
	series, ok := s.lru.Get(key)
	if !ok {
		metrics.RecordCacheMiss(BackendMemory)
		return nil, false, nil
	}
	metrics.RecordCacheHit(BackendMemory)
	return cloneSeries(series), true, nil
}

// Put stores a copy of series.
func (s *MemoryStore) Put(_ context.Context, key string, series []model.Observation) error {
	s.lru.Add(key, cloneSeries(series))
	return nil
}

// Len returns the number of live entries.
func (s *MemoryStore) Len(context.Context) int { return s.lru.Len() }

// Backend returns BackendMemory.
func (s *MemoryStore) Backend() string { return BackendMemory }

// Close drops every entry.
func (s *MemoryStore) Close() error {
	s.lru.Purge()
	return nil
}

func cloneSeries(in []model.Observation) []model.Observation {
	out := make([]model.Observation, len(in))
	for i, obs := range in {
		out[i] = model.Observation{Year: obs.Year}
		if obs.Value != nil {
			out[i].Value = model.Float(*obs.Value)
		}
	}
	return out
}
