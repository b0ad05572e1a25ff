// Package wdi fetches connectivity indicators from the World Bank
// World Development Indicators API.
package wdi

// WDI indicator codes.
const (
	IndicatorInternetUsers  = "IT.NET.USER.ZS" // individuals using the Internet, % of population
	IndicatorBandwidth      = "IT.NET.BNDW.PC" // international bandwidth, bits/s per Internet user
	IndicatorFixedBroadband = "IT.NET.BBND.P2" // fixed broadband subscriptions per 100 people
	bitsPerMegabit          = 1e6
	defaultPerPage          = 20000
	userAgent               = "dss-connectivity/1.0"
)

// Capacity sources reported per country in the fetch metadata.
const (
	SpeedSourceBandwidth = "bandwidth_bps_per_user"
	SpeedSourceProxy     = "fixed_broadband_subs_per100 (proxy)"
)

// Indicators lists the codes fetched for every country.
func Indicators() []string {
	return []string{IndicatorInternetUsers, IndicatorBandwidth, IndicatorFixedBroadband}
}
