// Package model contains domain models passed between layers.
package model

import "math"

// InputRow is one per-country observation before consolidation.
// Fields mirror the upload/API row schema. A nil metric means "absent", never zero.
type InputRow struct {
	Country                  string   `json:"country"`
	Year                     string   `json:"year,omitempty"`
	AccessInternetPct        *float64 `json:"access_internet_pct"`
	FixedBroadbandSubsPer100 *float64 `json:"fixed_broadband_subs_per100"`
	BroadbandSpeedMbps       *float64 `json:"broadband_speed_mbps"`
	MobileDataCostPctIncome  *float64 `json:"mobile_data_cost_pct_income"`
}

// Country is the consolidated record for one country key. Every non-nil
// metric is finite.
type Country struct {
	Country                  string   `json:"country"`
	Year                     string   `json:"year,omitempty"`
	AccessInternetPct        *float64 `json:"access_internet_pct"`
	FixedBroadbandSubsPer100 *float64 `json:"fixed_broadband_subs_per100"`
	BroadbandSpeedMbps       *float64 `json:"broadband_speed_mbps"`
	MobileDataCostPctIncome  *float64 `json:"mobile_data_cost_pct_income"`
}

// Raw returns the raw value of the given scoring axis.
func (c Country) Raw(a Axis) *float64 {
	switch a {
	case AxisAccess:
		return c.AccessInternetPct
	case AxisInfra:
		return c.FixedBroadbandSubsPer100
	case AxisCapacity:
		return c.BroadbandSpeedMbps
	default:
		return nil
	}
}

// Norm holds the min-max normalized value of each axis, all in [0,1].
type Norm struct {
	Access   float64 `json:"access"`
	Infra    float64 `json:"infra"`
	Capacity float64 `json:"capacity"`
}

// Get returns the normalized value of axis a.
func (n Norm) Get(a Axis) float64 {
	switch a {
	case AxisAccess:
		return n.Access
	case AxisInfra:
		return n.Infra
	case AxisCapacity:
		return n.Capacity
	default:
		return 0
	}
}

// NormalizedCountry is a consolidated country with its derived scoring fields.
type NormalizedCountry struct {
	Country
	Norm  Norm    `json:"norm"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// Weights are the batch-level axis weights. Each is 0 or 1/k where k is the
// number of axes with data.
type Weights struct {
	Access   float64 `json:"access"`
	Infra    float64 `json:"infra"`
	Capacity float64 `json:"capacity"`
}

// Get returns the weight of axis a.
func (w Weights) Get(a Axis) float64 {
	switch a {
	case AxisAccess:
		return w.Access
	case AxisInfra:
		return w.Infra
	case AxisCapacity:
		return w.Capacity
	default:
		return 0
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Access + w.Infra + w.Capacity
}

// Observation is one (period, value) point of an upstream indicator series.
type Observation struct {
	Year  string   `json:"year" msgpack:"y"`
	Value *float64 `json:"value" msgpack:"v"`
}

// Float returns a pointer to v, for building rows in code and tests.
func Float(v float64) *float64 { return &v }

// IsFinite reports whether v is present and neither NaN nor ±Inf.
func IsFinite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
