package scoring_test

import (
	"math"
	"testing"

	"github.com/okian/dss/internal/domain/model"
	scoring "github.com/okian/dss/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func f(v float64) *float64 { return model.Float(v) }

func TestScale(t *testing.T) {
	Convey("Given a column of raw values", t, func() {
		Convey("When values spread across a range", func() {
			out := scoring.Scale([]*float64{f(10), f(20), f(30)}, true)

			Convey("Then they are min-max scaled to [0,1]", func() {
				So(out, ShouldResemble, []float64{0, 0.5, 1})
			})
		})

		Convey("When lower is better", func() {
			out := scoring.Scale([]*float64{f(10), f(20), f(30)}, false)

			Convey("Then the scale is inverted", func() {
				So(out, ShouldResemble, []float64{1, 0.5, 0})
			})
		})

		Convey("When some values are missing or not finite", func() {
			out := scoring.Scale([]*float64{f(0), nil, f(100), f(math.NaN()), f(math.Inf(-1))}, true)

			Convey("Then missing entries are imputed as 0.5", func() {
				So(out, ShouldResemble, []float64{0, 0.5, 1, 0.5, 0.5})
			})
		})

		Convey("When every present value is equal", func() {
			out := scoring.Scale([]*float64{f(42), nil, f(42)}, true)

			Convey("Then present values collapse to 1.0 and missing ones to 0.5", func() {
				So(out, ShouldResemble, []float64{1, 0.5, 1})
			})

			Convey("And the collapse does not depend on direction", func() {
				So(scoring.Scale([]*float64{f(42), f(42)}, false), ShouldResemble, []float64{1, 1})
			})
		})

		Convey("When no value is present", func() {
			out := scoring.Scale([]*float64{nil, f(math.NaN()), nil}, true)

			Convey("Then every output is 0.5", func() {
				So(out, ShouldResemble, []float64{0.5, 0.5, 0.5})
			})
		})

		Convey("When the column is empty", func() {
			So(scoring.Scale(nil, true), ShouldBeEmpty)
		})

		Convey("When the range is wider than the largest float", func() {
			out := scoring.Scale([]*float64{f(-1e308), f(0), f(1e308)}, true)

			Convey("Then the extremes still map to 0 and 1", func() {
				So(out, ShouldResemble, []float64{0, 0.5, 1})
			})

			Convey("And scores stay finite and inside [0,1]", func() {
				ranked, _ := scoring.ScoreAll([]model.Country{
					{Country: "A", AccessInternetPct: f(-1e308)},
					{Country: "B", AccessInternetPct: f(1e308)},
				})
				So(ranked[0].Score, ShouldEqual, 0)
				So(ranked[1].Score, ShouldEqual, 1)
				So(ranked[1].Norm.Access, ShouldEqual, 1)
			})
		})
	})
}

func TestComputeWeights(t *testing.T) {
	Convey("Given consolidated countries", t, func() {
		Convey("When all three axes have data", func() {
			w := scoring.ComputeWeights([]model.Country{
				{Country: "A", AccessInternetPct: f(1), FixedBroadbandSubsPer100: f(2)},
				{Country: "B", BroadbandSpeedMbps: f(3)},
			})

			Convey("Then the weight is split evenly and sums to 1", func() {
				So(w.Access, ShouldAlmostEqual, 1.0/3)
				So(w.Infra, ShouldAlmostEqual, 1.0/3)
				So(w.Capacity, ShouldAlmostEqual, 1.0/3)
				So(w.Sum(), ShouldAlmostEqual, 1.0, 1e-12)
			})
		})

		Convey("When two axes have data", func() {
			w := scoring.ComputeWeights([]model.Country{
				{Country: "A", AccessInternetPct: f(1), BroadbandSpeedMbps: f(math.NaN())},
				{Country: "B", FixedBroadbandSubsPer100: f(2)},
			})

			Convey("Then the axis without data weighs 0", func() {
				So(w, ShouldResemble, model.Weights{Access: 0.5, Infra: 0.5, Capacity: 0})
			})
		})

		Convey("When the batch is empty", func() {
			So(scoring.ComputeWeights(nil), ShouldResemble, model.Weights{})
		})
	})
}

func TestScoreAll(t *testing.T) {
	Convey("Given the Chile/Colombia example", t, func() {
		countries := []model.Country{
			{Country: "Colombia", AccessInternetPct: f(77.3), FixedBroadbandSubsPer100: f(17), BroadbandSpeedMbps: f(17)},
			{Country: "Chile", AccessInternetPct: f(94.5), FixedBroadbandSubsPer100: f(23), BroadbandSpeedMbps: f(24)},
		}
		out, w := scoring.ScoreAll(countries)

		Convey("Then weights are uniform", func() {
			So(w.Sum(), ShouldAlmostEqual, 1.0, 1e-12)
		})

		Convey("And scores follow input order and are bounded", func() {
			So(out[0].Country.Country, ShouldEqual, "Colombia")
			So(out[0].Score, ShouldEqual, 0)
			So(out[1].Score, ShouldEqual, 1)
			So(out[1].Norm, ShouldResemble, model.Norm{Access: 1, Infra: 1, Capacity: 1})
		})
	})

	Convey("Given a batch where only usage is populated", t, func() {
		countries := []model.Country{
			{Country: "A", AccessInternetPct: f(50)},
			{Country: "B", AccessInternetPct: f(75)},
			{Country: "C", AccessInternetPct: f(100)},
		}
		out, w := scoring.ScoreAll(countries)

		Convey("Then only usage carries weight", func() {
			So(w, ShouldResemble, model.Weights{Access: 1})
		})

		Convey("And each score equals the normalized usage", func() {
			for _, c := range out {
				So(c.Score, ShouldEqual, c.Norm.Access)
				So(c.Norm.Infra, ShouldEqual, 0.5)
				So(c.Norm.Capacity, ShouldEqual, 0.5)
			}
			So(out[1].Score, ShouldEqual, 0.5)
		})
	})

	Convey("Given a single country", t, func() {
		out, w := scoring.ScoreAll([]model.Country{{Country: "Spain", FixedBroadbandSubsPer100: f(35)}})

		Convey("Then its only axis normalizes to 1.0 under the zero-variance rule", func() {
			So(out[0].Norm.Infra, ShouldEqual, 1)
			So(w.Infra, ShouldEqual, 1)
			So(out[0].Score, ShouldEqual, 1)
		})
	})

	Convey("Given an empty batch", t, func() {
		out, w := scoring.ScoreAll(nil)
		So(out, ShouldBeEmpty)
		So(w, ShouldResemble, model.Weights{})
	})

	Convey("Given scores that need rounding", t, func() {
		countries := []model.Country{
			{Country: "A", AccessInternetPct: f(0), FixedBroadbandSubsPer100: f(0), BroadbandSpeedMbps: f(0)},
			{Country: "B", AccessInternetPct: f(2), FixedBroadbandSubsPer100: f(1), BroadbandSpeedMbps: f(0)},
			{Country: "C", AccessInternetPct: f(3), FixedBroadbandSubsPer100: f(3), BroadbandSpeedMbps: f(3)},
		}
		out, _ := scoring.ScoreAll(countries)

		Convey("Then scores carry at most two decimals", func() {
			// B: (2/3 + 1/3 + 0) / 3 = 0.333...
			So(out[1].Score, ShouldEqual, 0.33)
			for _, c := range out {
				So(c.Score, ShouldBeBetweenOrEqual, 0, 1)
			}
		})
	})
}

func TestRound2(t *testing.T) {
	Convey("Given values to round", t, func() {
		So(scoring.Round2(0.666666), ShouldEqual, 0.67)
		So(scoring.Round2(0.125), ShouldEqual, 0.13)
		So(scoring.Round2(-0.125), ShouldEqual, -0.13)
		So(scoring.Round2(1), ShouldEqual, 1)
	})
}
