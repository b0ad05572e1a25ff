// Package cli drives a running comparison server from the command line and
// checks that its payloads honour the engine's invariants.
package cli

import (
	"errors"
	"time"
)

// Defaults for the check run.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultTimeout = 30 * time.Second
	DefaultRetries = 3

	healthRetryInterval = 500 * time.Millisecond
	scoreTolerance      = 1e-9
	weightTolerance     = 1e-6
	radarAxes           = 3
)

// ErrNoInput is returned when a check names neither countries nor a file.
var ErrNoInput = errors.New("cli: either countries or a file is required")

// ErrInvariant is wrapped by every payload invariant violation.
var ErrInvariant = errors.New("cli: payload invariant violated")

// Config holds configuration for a check run.
type Config struct {
	BaseURL   string        // Base URL of the service
	Countries []string      // Countries for GET /api/indicators
	File      string        // File for POST /api/upload
	Year      string        // Requested year
	Timeout   time.Duration // HTTP request timeout
	Retries   int           // Health probe retries before giving up
	Verbose   bool          // Log every step
}

// Stats summarizes a check run.
type Stats struct {
	Endpoint     string
	Countries    int
	Insights     int
	Violations   int
	RankingMatch *bool
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}
