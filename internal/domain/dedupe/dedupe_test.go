package dedupe_test

import (
	"math"
	"testing"

	dedupe "github.com/okian/dss/internal/domain/dedupe"
	"github.com/okian/dss/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConsolidate(t *testing.T) {
	Convey("Given per-country input rows", t, func() {
		Convey("When the batch is empty", func() {
			out := dedupe.Consolidate(nil)

			Convey("Then it should return an empty, non-nil slice", func() {
				So(out, ShouldNotBeNil)
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When every country appears once", func() {
			rows := []model.InputRow{
				{Country: "Chile", Year: "2023", AccessInternetPct: model.Float(94.5)},
				{Country: "Colombia", Year: "2023", AccessInternetPct: model.Float(77.3)},
			}
			out := dedupe.Consolidate(rows)

			Convey("Then it should keep one record per country in input order", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].Country, ShouldEqual, "Chile")
				So(out[1].Country, ShouldEqual, "Colombia")
				So(*out[0].AccessInternetPct, ShouldEqual, 94.5)
				So(out[0].FixedBroadbandSubsPer100, ShouldBeNil)
			})
		})

		Convey("When a country is duplicated", func() {
			rows := []model.InputRow{
				{Country: "Peru", AccessInternetPct: model.Float(70)},
				{Country: "Chile", AccessInternetPct: model.Float(90)},
				{Country: "Peru", Year: "2022", AccessInternetPct: model.Float(75), BroadbandSpeedMbps: model.Float(12)},
				{Country: "Peru", Year: "2021", FixedBroadbandSubsPer100: model.Float(9), BroadbandSpeedMbps: model.Float(99)},
			}
			out := dedupe.Consolidate(rows)

			Convey("Then the first populated value wins and later rows only fill gaps", func() {
				So(len(out), ShouldEqual, 2)
				peru := out[0]
				So(peru.Country, ShouldEqual, "Peru")
				So(*peru.AccessInternetPct, ShouldEqual, 70)
				So(*peru.BroadbandSpeedMbps, ShouldEqual, 12)
				So(*peru.FixedBroadbandSubsPer100, ShouldEqual, 9)
				So(peru.Year, ShouldEqual, "2022")
			})
		})

		Convey("When the first value is not finite", func() {
			rows := []model.InputRow{
				{Country: "Spain", AccessInternetPct: model.Float(math.NaN())},
				{Country: "Spain", AccessInternetPct: model.Float(95)},
				{Country: "France", AccessInternetPct: model.Float(math.Inf(1))},
			}
			out := dedupe.Consolidate(rows)

			Convey("Then the next finite value is used and non-finite values become nil", func() {
				So(*out[0].AccessInternetPct, ShouldEqual, 95)
				So(out[1].AccessInternetPct, ShouldBeNil)
			})
		})

		Convey("When two spellings of the same country are used", func() {
			rows := []model.InputRow{
				{Country: "México", AccessInternetPct: model.Float(76)},
				{Country: "Mexico", AccessInternetPct: model.Float(77)},
			}
			out := dedupe.Consolidate(rows)

			Convey("Then they are kept as distinct countries", func() {
				So(len(out), ShouldEqual, 2)
			})
		})

		Convey("When consolidating", func() {
			v := 50.0
			rows := []model.InputRow{{Country: "Italy", AccessInternetPct: &v}}
			out := dedupe.Consolidate(rows)
			*out[0].AccessInternetPct = 1

			Convey("Then the output does not alias caller-owned values", func() {
				So(v, ShouldEqual, 50.0)
			})
		})
	})
}

func TestFirstFinite(t *testing.T) {
	Convey("Given candidate values", t, func() {
		So(dedupe.FirstFinite(), ShouldBeNil)
		So(dedupe.FirstFinite(nil, nil), ShouldBeNil)
		So(*dedupe.FirstFinite(nil, model.Float(2), model.Float(3)), ShouldEqual, 2)
		So(*dedupe.FirstFinite(model.Float(math.NaN()), model.Float(0)), ShouldEqual, 0)
	})
}
