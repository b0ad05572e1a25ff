// Package engine composes the comparison stages: consolidation, axis
// normalization, weighting and scoring, ranking and insight derivation.
//
// Compare is a pure function of its input. It holds no state, takes no locks
// and may be called from any number of goroutines.
package engine

import (
	"github.com/okian/dss/internal/domain/dedupe"
	"github.com/okian/dss/internal/domain/insight"
	"github.com/okian/dss/internal/domain/model"
	"github.com/okian/dss/internal/domain/scoring"
	"github.com/okian/dss/internal/domain/types"
)

// Compare runs the full pipeline over a complete row set. It never fails:
// empty batches, all-missing axes and single-country batches all produce a
// defined result.
func Compare(rows []model.InputRow) types.Result {
	scored, weights := scoring.ScoreAll(dedupe.Consolidate(rows))
	ranked := scoring.Rank(scored)

	return types.Result{
		Comparison: ranked,
		Weights:    weights,
		Charts: types.Charts{
			Radar: types.RadarChart(ranked),
			Bars:  types.BarChart(ranked),
		},
		Insights: insight.Derive(ranked, weights),
	}
}
