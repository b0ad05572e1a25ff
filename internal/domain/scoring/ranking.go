package scoring

import (
	"sort"

	"github.com/okian/dss/internal/domain/model"
)

// Rank returns a new slice ordered by score descending with 1-based ranks.
// Ties keep their input order. The input slice is left untouched.
func Rank(list []model.NormalizedCountry) []model.NormalizedCountry {
	out := make([]model.NormalizedCountry, len(list))
	copy(out, list)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
