package repository

import "time"

// options configure the cache backends.
type options struct {
	size      int
	ttl       time.Duration
	keyPrefix string
}

func defaultOptions() options {
	return options{
		size:      1024,
		ttl:       6 * time.Hour,
		keyPrefix: "dss:series:",
	}
}

// Option applies a configuration option to a SeriesStore.
type Option func(*options)

// WithSize bounds the number of entries kept by the memory store.
func WithSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.size = size
		}
	}
}

// WithTTL sets how long a cached series stays valid.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithKeyPrefix namespaces keys in shared backends such as Redis.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.keyPrefix = prefix
		}
	}
}
