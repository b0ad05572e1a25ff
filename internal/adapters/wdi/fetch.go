package wdi

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/okian/dss/internal/adapters/countries"
	"github.com/okian/dss/internal/domain/model"
	"github.com/okian/dss/internal/domain/types"
)

// FetchResult holds engine-ready rows and how the request was resolved.
type FetchResult struct {
	Rows []model.InputRow
	Meta types.Resolution
}

// Fetch resolves names to ISO-3 codes, downloads the indicators of every
// resolved country and builds one row per country in request order.
// Names that do not resolve are skipped.
func (c *Client) Fetch(ctx context.Context, names []string, year string) (*FetchResult, error) {
	codes := make([]string, 0, len(names))
	for _, name := range names {
		if code, ok := countries.Resolve(name); ok {
			codes = append(codes, code)
		}
	}

	rows := make([]model.InputRow, len(codes))
	sources := make([]string, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(c.concurrency, len(codes))))

	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			row, source, err := c.countryRow(gctx, code, year)
			if err != nil {
				return err
			}
			rows[i] = row
			sources[i] = source
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	meta := types.Resolution{
		Requested:      append([]string{}, names...),
		Resolved:       codes,
		PerCountryYear: make(map[string]string, len(codes)),
		SpeedSource:    make(map[string]string, len(codes)),
	}
	for i, code := range codes {
		meta.PerCountryYear[code] = rows[i].Year
		meta.SpeedSource[code] = sources[i]
	}
	return &FetchResult{Rows: rows, Meta: meta}, nil
}

func (c *Client) countryRow(ctx context.Context, code, year string) (model.InputRow, string, error) {
	users, err := c.Series(ctx, code, IndicatorInternetUsers)
	if err != nil {
		return model.InputRow{}, "", err
	}
	bandwidth, err := c.Series(ctx, code, IndicatorBandwidth)
	if err != nil {
		return model.InputRow{}, "", err
	}
	fixed, err := c.Series(ctx, code, IndicatorFixedBroadband)
	if err != nil {
		return model.InputRow{}, "", err
	}

	u, b, f := Pick(users, year), Pick(bandwidth, year), Pick(fixed, year)

	source := SpeedSourceBandwidth
	var capacity *float64
	if b.Value != nil {
		capacity = model.Float(*b.Value / bitsPerMegabit)
	} else if f.Value != nil {
		// Fixed broadband subscriptions stand in for missing bandwidth.
		capacity = model.Float(*f.Value)
		source = SpeedSourceProxy
	}

	return model.InputRow{
		Country:                  countries.NameFor(code),
		Year:                     firstNonEmpty(u.Year, b.Year, f.Year),
		AccessInternetPct:        u.Value,
		FixedBroadbandSubsPer100: f.Value,
		BroadbandSpeedMbps:       capacity,
		MobileDataCostPctIncome:  nil,
	}, source, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
