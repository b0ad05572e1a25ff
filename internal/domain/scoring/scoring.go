// Package scoring normalizes per-axis metrics, derives adaptive weights and
// computes the composite score and ranking of a consolidated batch.
package scoring

import (
	"math"

	"github.com/okian/dss/internal/domain/model"
)

// Imputation and degenerate-axis constants.
const (
	neutralValue  = 0.5 // missing value, or axis absent from the whole batch
	flatAxisValue = 1.0 // present value on a zero-variance axis
)

// Scale min-max normalizes values to [0,1]. Non-finite entries are missing.
//   - no present value: every output is 0.5
//   - min == max: present values map to 1.0, missing to 0.5
//   - otherwise (v-min)/(max-min), inverted when !higherIsBetter; missing 0.5
func Scale(values []*float64, higherIsBetter bool) []float64 {
	out := make([]float64, len(values))

	lo, hi := math.Inf(1), math.Inf(-1)
	present := 0
	for _, v := range values {
		if !model.IsFinite(v) {
			continue
		}
		present++
		lo = math.Min(lo, *v)
		hi = math.Max(hi, *v)
	}

	for i, v := range values {
		switch {
		case present == 0 || !model.IsFinite(v):
			out[i] = neutralValue
		case lo == hi:
			out[i] = flatAxisValue
		default:
			n := (*v - lo) / (hi - lo)
			if math.IsInf(hi-lo, 0) {
				// range exceeds MaxFloat64; halved operands stay finite
				n = (*v/2 - lo/2) / (hi/2 - lo/2)
			}
			n = math.Max(0, math.Min(1, n))
			if !higherIsBetter {
				n = 1 - n
			}
			out[i] = n
		}
	}
	return out
}

// HasData reports whether at least one country has a finite value on axis a.
func HasData(countries []model.Country, a model.Axis) bool {
	for _, c := range countries {
		if model.IsFinite(c.Raw(a)) {
			return true
		}
	}
	return false
}

// ComputeWeights spreads weight uniformly over the axes that have data.
// Axes without any data weigh 0. An empty batch yields {0,0,0}.
func ComputeWeights(countries []model.Country) model.Weights {
	access := HasData(countries, model.AxisAccess)
	infra := HasData(countries, model.AxisInfra)
	capacity := HasData(countries, model.AxisCapacity)

	active := 0
	for _, on := range []bool{access, infra, capacity} {
		if on {
			active++
		}
	}
	if active == 0 {
		active = 1
	}

	share := 1 / float64(active)
	var w model.Weights
	if access {
		w.Access = share
	}
	if infra {
		w.Infra = share
	}
	if capacity {
		w.Capacity = share
	}
	return w
}

// ScoreAll normalizes every axis across the batch and scores each country as
// the weighted sum of its normalized values, rounded to 2 decimals. The
// result keeps the input order; see Rank for ordering.
func ScoreAll(countries []model.Country) ([]model.NormalizedCountry, model.Weights) {
	weights := ComputeWeights(countries)

	norms := make(map[model.Axis][]float64, len(model.Axes))
	for _, a := range model.Axes {
		raw := make([]*float64, len(countries))
		for i, c := range countries {
			raw[i] = c.Raw(a)
		}
		norms[a] = Scale(raw, true)
	}

	out := make([]model.NormalizedCountry, len(countries))
	for i, c := range countries {
		n := model.Norm{
			Access:   norms[model.AxisAccess][i],
			Infra:    norms[model.AxisInfra][i],
			Capacity: norms[model.AxisCapacity][i],
		}
		out[i] = model.NormalizedCountry{
			Country: c,
			Norm:    n,
			Score:   Round2(n.Access*weights.Access + n.Infra*weights.Infra + n.Capacity*weights.Capacity),
		}
	}
	return out, weights
}

// Round2 rounds x to 2 decimal places, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
