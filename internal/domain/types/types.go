// Package types contains the result and payload shapes shared by the engine,
// the HTTP API and the CLI.
package types

import "github.com/okian/dss/internal/domain/model"

// ScoreSeriesLabel names the single bar-chart series.
const ScoreSeriesLabel = "Score (0–1)"

// Dataset is one chart series.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// Chart is a chart-ready projection: category labels plus series.
type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Charts groups the radar and bar projections of a comparison.
type Charts struct {
	Radar Chart `json:"radar"`
	Bars  Chart `json:"bars"`
}

// Result is the output of one engine invocation.
type Result struct {
	Comparison []model.NormalizedCountry `json:"comparison"`
	Weights    model.Weights             `json:"weights"`
	Charts     Charts                    `json:"charts"`
	Insights   []string                  `json:"insights"`
}

// Request echoes what the caller asked for.
type Request struct {
	Countries []string `json:"countries,omitempty"`
	Year      string   `json:"year"`
	Upload    bool     `json:"upload,omitempty"`
	Filename  string   `json:"filename,omitempty"`
}

// Resolution describes how an upstream fetch resolved the request.
type Resolution struct {
	Requested      []string          `json:"requested"`
	Resolved       []string          `json:"resolved"`
	PerCountryYear map[string]string `json:"per_country_year"`
	SpeedSource    map[string]string `json:"speed_source"`
}

// Meta carries request and resolution metadata.
type Meta struct {
	Request  Request     `json:"request"`
	Resolved *Resolution `json:"resolved,omitempty"`
}

// Payload is the full comparison response.
type Payload struct {
	Raw []model.InputRow `json:"raw"`
	Result
	Meta Meta `json:"meta"`
}

// RadarChart projects each country's normalized axes onto the three fixed
// axis labels, one dataset per country.
func RadarChart(comparison []model.NormalizedCountry) Chart {
	labels := make([]string, 0, len(model.Axes))
	for _, a := range model.Axes {
		labels = append(labels, a.ChartLabel())
	}

	datasets := make([]Dataset, 0, len(comparison))
	for _, c := range comparison {
		datasets = append(datasets, Dataset{
			Label: c.Country.Country,
			Data:  []float64{c.Norm.Access, c.Norm.Infra, c.Norm.Capacity},
		})
	}
	return Chart{Labels: labels, Datasets: datasets}
}

// BarChart projects scores as a single series in comparison order.
func BarChart(comparison []model.NormalizedCountry) Chart {
	labels := make([]string, 0, len(comparison))
	scores := make([]float64, 0, len(comparison))
	for _, c := range comparison {
		labels = append(labels, c.Country.Country)
		scores = append(scores, c.Score)
	}
	return Chart{
		Labels:   labels,
		Datasets: []Dataset{{Label: ScoreSeriesLabel, Data: scores}},
	}
}
