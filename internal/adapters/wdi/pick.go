package wdi

import (
	"sort"
	"strconv"

	"github.com/okian/dss/internal/domain/model"
)

// Pick selects the observation for year when present, otherwise the latest
// year in the series. An empty series yields the zero Observation.
func Pick(series []model.Observation, year string) model.Observation {
	if len(series) == 0 {
		return model.Observation{}
	}
	if year != "" {
		for _, obs := range series {
			if obs.Year == year {
				return obs
			}
		}
	}

	sorted := make([]model.Observation, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return yearNumber(sorted[i].Year) > yearNumber(sorted[j].Year)
	})
	return sorted[0]
}

// yearNumber orders non-numeric periods after every numeric one.
func yearNumber(y string) int {
	n, err := strconv.Atoi(y)
	if err != nil {
		return -1 << 31
	}
	return n
}
