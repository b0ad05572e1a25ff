// Package dedupe collapses duplicate per-country rows into one record per country.
//
// The country string is used as an exact key: no trimming, case folding or
// accent stripping happens here, so "México" and "Mexico" stay distinct.
package dedupe

import "github.com/okian/dss/internal/domain/model"

// Consolidate merges rows sharing the same Country into a single record.
// For every metric the first finite value in row order wins; later rows only
// fill gaps. Year resolves to the first non-empty value. Output order is the
// order of first appearance. Input rows are not modified.
func Consolidate(rows []model.InputRow) []model.Country {
	out := make([]model.Country, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, r := range rows {
		i, ok := index[r.Country]
		if !ok {
			index[r.Country] = len(out)
			out = append(out, model.Country{
				Country:                  r.Country,
				Year:                     r.Year,
				AccessInternetPct:        FirstFinite(r.AccessInternetPct),
				FixedBroadbandSubsPer100: FirstFinite(r.FixedBroadbandSubsPer100),
				BroadbandSpeedMbps:       FirstFinite(r.BroadbandSpeedMbps),
				MobileDataCostPctIncome:  FirstFinite(r.MobileDataCostPctIncome),
			})
			continue
		}

		c := &out[i]
		if c.Year == "" {
			c.Year = r.Year
		}
		c.AccessInternetPct = FirstFinite(c.AccessInternetPct, r.AccessInternetPct)
		c.FixedBroadbandSubsPer100 = FirstFinite(c.FixedBroadbandSubsPer100, r.FixedBroadbandSubsPer100)
		c.BroadbandSpeedMbps = FirstFinite(c.BroadbandSpeedMbps, r.BroadbandSpeedMbps)
		c.MobileDataCostPctIncome = FirstFinite(c.MobileDataCostPctIncome, r.MobileDataCostPctIncome)
	}
	return out
}

// FirstFinite returns a copy of the first finite value, or nil when none is.
func FirstFinite(values ...*float64) *float64 {
	for _, v := range values {
		if model.IsFinite(v) {
			return model.Float(*v)
		}
	}
	return nil
}
