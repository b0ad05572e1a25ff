package scoring_test

import (
	"testing"

	"github.com/okian/dss/internal/domain/model"
	scoring "github.com/okian/dss/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func nc(name string, score float64) model.NormalizedCountry {
	return model.NormalizedCountry{Country: model.Country{Country: name}, Score: score}
}

func TestRank(t *testing.T) {
	Convey("Given scored countries in arbitrary order", t, func() {
		in := []model.NormalizedCountry{nc("A", 0.2), nc("B", 0.9), nc("C", 0.5), nc("D", 0.5)}
		out := scoring.Rank(in)

		Convey("Then they are ordered by score descending with 1-based ranks", func() {
			names := make([]string, len(out))
			for i, c := range out {
				names[i] = c.Country.Country
				So(c.Rank, ShouldEqual, i+1)
				if i > 0 {
					So(out[i-1].Score, ShouldBeGreaterThanOrEqualTo, c.Score)
				}
			}
			So(names, ShouldResemble, []string{"B", "C", "D", "A"})
		})

		Convey("And the input slice is not modified", func() {
			So(in[0].Country.Country, ShouldEqual, "A")
			So(in[0].Rank, ShouldEqual, 0)
		})
	})

	Convey("Given no countries", t, func() {
		So(scoring.Rank(nil), ShouldBeEmpty)
	})
}
