package engine_test

import (
	"math/rand"
	"strings"
	"testing"

	engine "github.com/okian/dss/internal/domain/engine"
	"github.com/okian/dss/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func exampleRows() []model.InputRow {
	return []model.InputRow{
		{Country: "Chile", Year: "2023", AccessInternetPct: model.Float(94.5), FixedBroadbandSubsPer100: model.Float(23), BroadbandSpeedMbps: model.Float(24)},
		{Country: "Colombia", Year: "2023", AccessInternetPct: model.Float(77.3), FixedBroadbandSubsPer100: model.Float(17), BroadbandSpeedMbps: model.Float(17)},
	}
}

// randomRows builds a batch with duplicates and gaps from a fixed seed.
func randomRows(seed int64) []model.InputRow {
	rng := rand.New(rand.NewSource(seed))
	names := []string{"Chile", "Peru", "Spain", "Japan", "India", "Brasil"}
	maybe := func(scale float64) *float64 {
		if rng.Intn(4) == 0 {
			return nil
		}
		return model.Float(rng.Float64() * scale)
	}
	rows := make([]model.InputRow, 0, 12)
	for i := 0; i < 12; i++ {
		rows = append(rows, model.InputRow{
			Country:                  names[rng.Intn(len(names))],
			AccessInternetPct:        maybe(100),
			FixedBroadbandSubsPer100: maybe(50),
			BroadbandSpeedMbps:       maybe(200),
		})
	}
	return rows
}

func TestCompare(t *testing.T) {
	Convey("Given the Chile/Colombia example", t, func() {
		res := engine.Compare(exampleRows())

		Convey("Then weights are a third each", func() {
			So(res.Weights.Access, ShouldAlmostEqual, 1.0/3)
			So(res.Weights.Infra, ShouldAlmostEqual, 1.0/3)
			So(res.Weights.Capacity, ShouldAlmostEqual, 1.0/3)
		})

		Convey("And Chile ranks first with a higher score", func() {
			So(res.Comparison[0].Country.Country, ShouldEqual, "Chile")
			So(res.Comparison[0].Score, ShouldBeGreaterThan, res.Comparison[1].Score)
			for _, c := range res.Comparison {
				So(c.Score, ShouldBeBetweenOrEqual, 0, 1)
			}
		})

		Convey("And the first insight names the top country and its score", func() {
			So(res.Insights[0], ShouldEqual, "Top score is Chile (1).")
		})

		Convey("And chart projections follow the comparison", func() {
			So(res.Charts.Radar.Labels, ShouldHaveLength, 3)
			So(res.Charts.Radar.Datasets[0].Data, ShouldHaveLength, 3)
			So(res.Charts.Bars.Labels, ShouldResemble, []string{"Chile", "Colombia"})
		})
	})

	Convey("Given a batch with only usage data", t, func() {
		res := engine.Compare([]model.InputRow{
			{Country: "A", AccessInternetPct: model.Float(40)},
			{Country: "B", AccessInternetPct: model.Float(90)},
			{Country: "C", AccessInternetPct: model.Float(65)},
		})

		Convey("Then usage carries all the weight", func() {
			So(res.Weights, ShouldResemble, model.Weights{Access: 1, Infra: 0, Capacity: 0})
		})

		Convey("And absent axes are imputed as 0.5 and the score equals normalized usage", func() {
			for _, c := range res.Comparison {
				So(c.Norm.Infra, ShouldEqual, 0.5)
				So(c.Norm.Capacity, ShouldEqual, 0.5)
				So(c.Score, ShouldEqual, c.Norm.Access)
			}
		})
	})

	Convey("Given a single country", t, func() {
		res := engine.Compare([]model.InputRow{{Country: "Japan", BroadbandSpeedMbps: model.Float(80)}})

		Convey("Then its populated axis normalizes to 1.0 and it ranks first", func() {
			So(res.Comparison, ShouldHaveLength, 1)
			So(res.Comparison[0].Norm.Capacity, ShouldEqual, 1)
			So(res.Comparison[0].Score, ShouldEqual, 1)
			So(res.Comparison[0].Rank, ShouldEqual, 1)
		})

		Convey("And no differentiating axis is reported", func() {
			for _, line := range res.Insights {
				So(strings.Contains(line, "differentiating"), ShouldBeFalse)
			}
		})
	})

	Convey("Given two countries with identical values on the only populated axis", t, func() {
		res := engine.Compare([]model.InputRow{
			{Country: "A", FixedBroadbandSubsPer100: model.Float(20)},
			{Country: "B", FixedBroadbandSubsPer100: model.Float(20)},
		})

		Convey("Then both collapse to 1.0 on that axis", func() {
			So(res.Comparison[0].Norm.Infra, ShouldEqual, 1)
			So(res.Comparison[1].Norm.Infra, ShouldEqual, 1)
		})
	})

	Convey("Given an empty batch", t, func() {
		res := engine.Compare(nil)

		Convey("Then the result is empty but well formed", func() {
			So(res.Comparison, ShouldBeEmpty)
			So(res.Weights, ShouldResemble, model.Weights{})
			So(res.Insights, ShouldBeEmpty)
			So(res.Charts.Radar.Labels, ShouldHaveLength, 3)
		})
	})

	Convey("Given random batches", t, func() {
		for seed := int64(1); seed <= 50; seed++ {
			rows := randomRows(seed)
			res := engine.Compare(rows)

			active := 0
			for _, w := range []float64{res.Weights.Access, res.Weights.Infra, res.Weights.Capacity} {
				if w > 0 {
					active++
				}
			}
			if active > 0 {
				So(res.Weights.Sum(), ShouldAlmostEqual, 1.0, 1e-9)
			}

			for i, c := range res.Comparison {
				So(c.Score, ShouldBeBetweenOrEqual, 0, 1)
				So(c.Rank, ShouldEqual, i+1)
				if i > 0 {
					So(res.Comparison[i-1].Score, ShouldBeGreaterThanOrEqualTo, c.Score)
				}
			}

			So(engine.Compare(randomRows(seed)), ShouldResemble, res)
		}
	})
}
