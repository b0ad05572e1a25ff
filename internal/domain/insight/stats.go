package insight

import (
	"math"

	"github.com/okian/dss/internal/domain/model"
)

// stdev is the sample (n-1) standard deviation of the finite values in xs.
// Fewer than two finite values yield 0.
func stdev(xs []float64) float64 {
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			vals = append(vals, x)
		}
	}
	if len(vals) < 2 {
		return 0
	}

	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))

	var sq float64
	for _, v := range vals {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(vals)-1))
}

// maxIndex returns the index of the largest finite value, first occurrence
// on ties, or -1 when no value is finite.
func maxIndex(xs []*float64) int {
	idx := -1
	best := math.Inf(-1)
	for i, v := range xs {
		if model.IsFinite(v) && *v > best {
			best, idx = *v, i
		}
	}
	return idx
}

// missingShare is the fraction of entries that are absent or not finite.
func missingShare(xs []*float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	miss := 0
	for _, v := range xs {
		if !model.IsFinite(v) {
			miss++
		}
	}
	return float64(miss) / float64(len(xs))
}
