package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/okian/dss/internal/domain/model"
	"github.com/okian/dss/pkg/metrics"
)

// RedisStore keeps msgpack-encoded series in Redis with a TTL.
type RedisStore struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// NewRedisStore connects to addr and verifies the connection with PING.
func NewRedisStore(ctx context.Context, addr, password string, db int, opts ...Option) (*RedisStore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
		MaxRetries:  1,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrBackend, addr, err)
	}

	return &RedisStore{client: client, ttl: o.ttl, keyPrefix: o.keyPrefix}, nil
}

// Get fetches and decodes a cached series.
func (s *RedisStore) Get(ctx context.Context, key string) ([]model.Observation, bool, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheMiss(BackendRedis)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s: %w", ErrBackend, key, err)
	}

	series, err := decodeSeries(data)
	if err != nil {
		return nil, false, err
	}
	metrics.RecordCacheHit(BackendRedis)
	return series, true, nil
}

// Put encodes and stores series with the configured TTL.
func (s *RedisStore) Put(ctx context.Context, key string, series []model.Observation) error {
	data, err := encodeSeries(series)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrBackend, key, err)
	}
	return nil
}

// Len is unknown for a shared Redis keyspace.
func (s *RedisStore) Len(context.Context) int { return -1 }

// Backend returns BackendRedis.
func (s *RedisStore) Backend() string { return BackendRedis }

// Close closes the Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

func encodeSeries(series []model.Observation) ([]byte, error) {
	data, err := msgpack.Marshal(series)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrCorruptEntry, err)
	}
	return data, nil
}

func decodeSeries(data []byte) ([]model.Observation, error) {
	var series []model.Observation
	if err := msgpack.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrCorruptEntry, err)
	}
	return series, nil
}
