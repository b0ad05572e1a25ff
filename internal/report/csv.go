package report

import (
	"encoding/csv"
	"io"

	"github.com/okian/dss/internal/domain/types"
)

// CSVHeader lists the export columns in order.
var CSVHeader = []string{ //nolint:gochecknoglobals // fixed export schema
	"country", "year", "use_pct", "fixed_broadband_per100", "capacity_mbps_per_user",
	"score", "w_access", "w_infra", "w_capacity",
}

// WriteCSV exports the ranked comparison, one row per country. Raw values
// are rounded to two decimals and missing values are left empty.
func WriteCSV(w io.Writer, res types.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	wa, wi, wc := num(res.Weights.Access), num(res.Weights.Infra), num(res.Weights.Capacity)
	for _, c := range res.Comparison {
		score := c.Score
		if err := cw.Write([]string{
			c.Country.Country,
			c.Country.Year,
			cell(c.Country.AccessInternetPct),
			cell(c.Country.FixedBroadbandSubsPer100),
			cell(c.Country.BroadbandSpeedMbps),
			cell(&score),
			wa, wi, wc,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
