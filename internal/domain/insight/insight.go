// Package insight derives short narrative findings from a ranked comparison.
package insight

import (
	"fmt"
	"strconv"

	"github.com/okian/dss/internal/domain/model"
	"github.com/okian/dss/internal/domain/scoring"
)

// MissingDataNote is emitted whenever any raw axis has missing values.
const MissingDataNote = "Note: some values are missing; they were imputed as neutral (0.5) during normalization."

// leaderUnits formats the raw value of each axis in its leader line.
var leaderUnits = map[model.Axis]string{
	model.AxisAccess:   "%s%%",
	model.AxisInfra:    "%s subscriptions/100",
	model.AxisCapacity: "%s Mbps/user",
}

// Derive returns the findings for a ranked comparison, in a fixed order:
// top score, first-to-last gap, most differentiating axis, per-axis raw
// leaders and the missing-data note. An empty comparison yields no findings.
func Derive(ranked []model.NormalizedCountry, weights model.Weights) []string {
	out := []string{}
	if len(ranked) == 0 {
		return out
	}

	top, last := ranked[0], ranked[len(ranked)-1]
	out = append(out, fmt.Sprintf("Top score is %s (%s).", top.Country.Country, num(top.Score)))
	if len(ranked) > 1 {
		out = append(out, fmt.Sprintf("Gap between first and last: %s points (0–1).", num(scoring.Round2(top.Score-last.Score))))
	}

	if axis, sd := mostDifferentiating(ranked); sd > 0 {
		out = append(out, fmt.Sprintf("Most differentiating axis: %s (std. dev. %s, weight %s).",
			axis.Label(), num(scoring.Round2(sd)), num(scoring.Round2(weights.Get(axis)))))
	}

	missing := 0.0
	for _, a := range model.Axes {
		raw := make([]*float64, len(ranked))
		for i, c := range ranked {
			raw[i] = c.Raw(a)
		}
		if i := maxIndex(raw); i >= 0 {
			value := fmt.Sprintf(leaderUnits[a], num(scoring.Round2(*raw[i])))
			out = append(out, fmt.Sprintf("Leader in %s: %s (%s).", a.Label(), ranked[i].Country.Country, value))
		}
		if share := missingShare(raw); share > missing {
			missing = share
		}
	}

	if missing > 0 {
		out = append(out, MissingDataNote)
	}
	return out
}

// mostDifferentiating picks the axis whose normalized values spread the most.
// Ties go to the earlier axis.
func mostDifferentiating(ranked []model.NormalizedCountry) (model.Axis, float64) {
	best, bestSD := model.AxisAccess, -1.0
	for _, a := range model.Axes {
		vals := make([]float64, len(ranked))
		for i, c := range ranked {
			vals[i] = c.Norm.Get(a)
		}
		if sd := stdev(vals); sd > bestSD {
			best, bestSD = a, sd
		}
	}
	return best, bestSD
}

// num renders v with the shortest decimal representation.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
