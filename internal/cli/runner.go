package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	service "github.com/okian/dss/internal/app"
	"github.com/okian/dss/internal/domain/types"
	"github.com/okian/dss/pkg/logger"
)

// Run checks a running server: health, one comparison, invariants and, for
// uploads, agreement with the local engine. The returned error is non-nil
// when any step fails or any invariant is violated.
func Run(ctx context.Context, cfg *Config, out io.Writer) (*Stats, error) {
	if len(cfg.Countries) == 0 && cfg.File == "" {
		return nil, ErrNoInput
	}

	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()
	client := NewHTTPClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting server check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Strings("countries", cfg.Countries),
		logger.String("file", cfg.File),
		logger.String("year", cfg.Year))

	// Step 1: Check service health
	if err := client.Health(ctx, cfg.Retries); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}
	step(out, true, "server healthy at %s", cfg.BaseURL)

	// Step 2: Request one comparison
	var (
		payload *types.Payload
		err     error
	)
	if cfg.File != "" {
		stats.Endpoint = "/api/upload"
		payload, err = client.Upload(ctx, cfg.File, cfg.Year)
	} else {
		stats.Endpoint = "/api/indicators"
		payload, err = client.Indicators(ctx, cfg.Countries, cfg.Year)
	}
	if err != nil {
		step(out, false, "%s failed", stats.Endpoint)
		return finish(stats), fmt.Errorf("comparison request failed: %w", err)
	}
	stats.Countries = len(payload.Comparison)
	stats.Insights = len(payload.Insights)
	step(out, true, "%s returned %d countries", stats.Endpoint, stats.Countries)

	// Step 3: Verify invariants
	verr := Verify(payload)
	if verr != nil {
		stats.Violations = countJoined(verr)
		step(out, false, "%d invariant violations", stats.Violations)
		if cfg.Verbose {
			_, _ = fmt.Fprintln(out, verr.Error())
		}
	} else {
		step(out, true, "weights, scores, ranks and charts are consistent")
	}

	// Step 4: Compare against the local engine
	var rerr error
	if cfg.File != "" {
		rerr = compareLocal(ctx, cfg, payload)
		match := rerr == nil
		stats.RankingMatch = &match
		if match {
			step(out, true, "server ranking matches the local engine")
		} else {
			step(out, false, "ranking mismatch: %v", rerr)
		}
	}

	finish(stats)
	displayFinalStats(out, stats)
	return stats, errors.Join(verr, rerr)
}

func compareLocal(ctx context.Context, cfg *Config, server *types.Payload) error {
	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	local, err := service.New().CompareUpload(ctx, data, filepath.Base(cfg.File), "", cfg.Year)
	if err != nil {
		return fmt.Errorf("local engine rejected the file: %w", err)
	}
	return CompareRankings(server, local)
}

func finish(stats *Stats) *Stats {
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	return stats
}

func countJoined(err error) int {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return len(j.Unwrap())
	}
	return 1
}

func step(out io.Writer, ok bool, format string, args ...any) {
	mark := color.New(color.FgGreen).Sprint("✔")
	if !ok {
		mark = color.New(color.FgRed).Sprint("✘")
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

func displayFinalStats(out io.Writer, stats *Stats) {
	match := "n/a"
	if stats.RankingMatch != nil {
		match = fmt.Sprint(*stats.RankingMatch)
	}
	_, _ = color.New(color.Bold).Fprintln(out, "Check summary")
	_, _ = fmt.Fprintf(out, `   Endpoint:      %s
   Countries:     %d
   Insights:      %d
   Violations:    %d
   Ranking match: %s
   Duration:      %s
`, stats.Endpoint, stats.Countries, stats.Insights, stats.Violations, match, stats.Duration.Round(time.Millisecond))
}
