package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/dss/internal/domain/model"
	"github.com/okian/dss/internal/domain/types"
)

// Verify checks a payload against the engine invariants and returns every
// violation joined, or nil.
func Verify(p *types.Payload) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...))
	}

	w := p.Weights
	sum := w.Access + w.Infra + w.Capacity
	if sum != 0 && math.Abs(sum-1) > weightTolerance {
		add("weights sum to %.4f, want 1 or 0", sum)
	}
	for _, a := range model.Axes {
		if v := w.Get(a); v < 0 || v > 1 {
			add("weight %s=%.4f out of [0,1]", a, v)
		}
	}

	for i, c := range p.Comparison {
		if c.Rank != i+1 {
			add("%s at position %d has rank %d", c.Country.Country, i+1, c.Rank)
		}
		if c.Score < 0 || c.Score > 1 {
			add("%s score %.4f out of [0,1]", c.Country.Country, c.Score)
		}
		for _, a := range model.Axes {
			if v := c.Norm.Get(a); v < 0 || v > 1 {
				add("%s norm %s=%.4f out of [0,1]", c.Country.Country, a, v)
			}
		}
		if i > 0 && c.Score > p.Comparison[i-1].Score {
			add("%s (%.4f) ranked below a lower score (%.4f)", c.Country.Country, c.Score, p.Comparison[i-1].Score)
		}
	}

	n := len(p.Comparison)
	radar := p.Charts.Radar
	if len(radar.Labels) != radarAxes {
		add("radar has %d labels, want %d", len(radar.Labels), radarAxes)
	}
	if len(radar.Datasets) != n {
		add("radar has %d datasets, want %d", len(radar.Datasets), n)
	}
	for _, ds := range radar.Datasets {
		if len(ds.Data) != radarAxes {
			add("radar dataset %q has %d points, want %d", ds.Label, len(ds.Data), radarAxes)
		}
	}
	bars := p.Charts.Bars
	if len(bars.Labels) != n {
		add("bars have %d labels, want %d", len(bars.Labels), n)
	}
	if len(bars.Datasets) != 1 || len(bars.Datasets[0].Data) != n {
		add("bars must carry one series of %d scores", n)
	}

	return errors.Join(errs...)
}

// CompareRankings reports whether server and local rank the same countries
// in the same order with the same scores.
func CompareRankings(server, local *types.Payload) error {
	if len(server.Comparison) != len(local.Comparison) {
		return fmt.Errorf("server ranked %d countries, local engine %d",
			len(server.Comparison), len(local.Comparison))
	}
	for i := range server.Comparison {
		s, l := server.Comparison[i], local.Comparison[i]
		if s.Country.Country != l.Country.Country {
			return fmt.Errorf("rank %d: server has %s, local engine has %s", i+1, s.Country.Country, l.Country.Country)
		}
		if math.Abs(s.Score-l.Score) > scoreTolerance {
			return fmt.Errorf("%s: server score %.4f does not match local %.4f", s.Country.Country, s.Score, l.Score)
		}
	}
	return nil
}
