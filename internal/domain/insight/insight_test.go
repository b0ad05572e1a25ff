package insight_test

import (
	"testing"

	"github.com/okian/dss/internal/domain/dedupe"
	insight "github.com/okian/dss/internal/domain/insight"
	"github.com/okian/dss/internal/domain/model"
	"github.com/okian/dss/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func rank(rows []model.InputRow) ([]model.NormalizedCountry, model.Weights) {
	scored, w := scoring.ScoreAll(dedupe.Consolidate(rows))
	return scoring.Rank(scored), w
}

func TestDerive(t *testing.T) {
	Convey("Given an empty comparison", t, func() {
		out := insight.Derive(nil, model.Weights{})

		Convey("Then there are no findings", func() {
			So(out, ShouldNotBeNil)
			So(out, ShouldBeEmpty)
		})
	})

	Convey("Given the Chile/Colombia comparison", t, func() {
		ranked, w := rank([]model.InputRow{
			{Country: "Chile", AccessInternetPct: model.Float(94.5), FixedBroadbandSubsPer100: model.Float(23), BroadbandSpeedMbps: model.Float(24)},
			{Country: "Colombia", AccessInternetPct: model.Float(77.3), FixedBroadbandSubsPer100: model.Float(17), BroadbandSpeedMbps: model.Float(17)},
		})
		out := insight.Derive(ranked, w)

		Convey("Then findings come in the documented order", func() {
			So(out, ShouldResemble, []string{
				"Top score is Chile (1).",
				"Gap between first and last: 1 points (0–1).",
				"Most differentiating axis: usage (std. dev. 0.71, weight 0.33).",
				"Leader in usage: Chile (94.5%).",
				"Leader in fixed infrastructure: Chile (23 subscriptions/100).",
				"Leader in capacity: Chile (24 Mbps/user).",
			})
		})
	})

	Convey("Given a single country with full data", t, func() {
		ranked, w := rank([]model.InputRow{
			{Country: "Spain", AccessInternetPct: model.Float(95.123), FixedBroadbandSubsPer100: model.Float(35), BroadbandSpeedMbps: model.Float(40)},
		})
		out := insight.Derive(ranked, w)

		Convey("Then no gap or differentiating axis is reported", func() {
			So(out[0], ShouldEqual, "Top score is Spain (1).")
			So(len(out), ShouldEqual, 4)
			for _, line := range out {
				So(line, ShouldNotContainSubstring, "Gap")
				So(line, ShouldNotContainSubstring, "differentiating")
			}
		})

		Convey("And raw leader values are rounded to 2 decimals", func() {
			So(out[1], ShouldEqual, "Leader in usage: Spain (95.12%).")
		})
	})

	Convey("Given a batch with missing values", t, func() {
		ranked, w := rank([]model.InputRow{
			{Country: "A", AccessInternetPct: model.Float(60), BroadbandSpeedMbps: model.Float(5)},
			{Country: "B", AccessInternetPct: model.Float(80)},
			{Country: "C", AccessInternetPct: model.Float(80)},
		})
		out := insight.Derive(ranked, w)

		Convey("Then the leader on an axis is the first maximum in ranked order", func() {
			So(out, ShouldContain, "Leader in usage: B (80%).")
		})

		Convey("And an axis without data has no leader", func() {
			for _, line := range out {
				So(line, ShouldNotContainSubstring, "fixed infrastructure: ")
			}
		})

		Convey("And the missing-data note closes the findings", func() {
			So(out[len(out)-1], ShouldEqual, insight.MissingDataNote)
		})
	})

	Convey("Given countries differing on one axis only", t, func() {
		ranked, w := rank([]model.InputRow{
			{Country: "A", AccessInternetPct: model.Float(90), FixedBroadbandSubsPer100: model.Float(10), BroadbandSpeedMbps: model.Float(5)},
			{Country: "B", AccessInternetPct: model.Float(90), FixedBroadbandSubsPer100: model.Float(30), BroadbandSpeedMbps: model.Float(5)},
		})
		out := insight.Derive(ranked, w)

		Convey("Then that axis is reported as most differentiating", func() {
			So(out, ShouldContain, "Most differentiating axis: fixed infrastructure (std. dev. 0.71, weight 0.33).")
		})
	})
}
