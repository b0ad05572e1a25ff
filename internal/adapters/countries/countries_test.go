package countries

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given the alias table", t, func() {
		Convey("Exact names resolve", func() {
			code, ok := Resolve("Colombia")
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, "COL")

			code, _ = Resolve("Spain")
			So(code, ShouldEqual, "ESP")
		})

		Convey("Accented and unaccented spellings resolve to the same code", func() {
			a, _ := Resolve("México")
			b, _ := Resolve("mexico")
			c, _ := Resolve("  JAPÓN ")
			So(a, ShouldEqual, "MEX")
			So(b, ShouldEqual, "MEX")
			So(c, ShouldEqual, "JPN")
		})

		Convey("Three-letter input is treated as a code", func() {
			code, ok := Resolve("chl")
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, "CHL")

			code, ok = Resolve("ZZZ")
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, "ZZZ")
		})

		Convey("Multi-word aliases only match their registered casing", func() {
			code, ok := Resolve("Reino Unido")
			So(ok, ShouldBeTrue)
			So(code, ShouldEqual, "GBR")

			_, ok = Resolve("reino unido")
			So(ok, ShouldBeFalse)
		})

		Convey("Unknown and empty names do not resolve", func() {
			_, ok := Resolve("Narnia")
			So(ok, ShouldBeFalse)
			_, ok = Resolve("   ")
			So(ok, ShouldBeFalse)
			_, ok = Resolve("U.K")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestNameFor(t *testing.T) {
	Convey("NameFor returns the first registered alias", t, func() {
		So(NameFor("MEX"), ShouldEqual, "Mexico")
		So(NameFor("GBR"), ShouldEqual, "Reino Unido")
		So(NameFor("USA"), ShouldEqual, "Estados Unidos")
		So(NameFor("NOR"), ShouldEqual, "NOR")
	})
}

func TestAliases(t *testing.T) {
	Convey("Aliases returns an independent copy", t, func() {
		list := Aliases()
		So(list[0], ShouldResemble, Alias{Name: "Colombia", ISO3: "COL"})

		list[0].ISO3 = "XXX"
		So(Aliases()[0].ISO3, ShouldEqual, "COL")
	})
}

func TestStripAccents(t *testing.T) {
	Convey("StripAccents drops combining marks", t, func() {
		So(StripAccents("Turquía"), ShouldEqual, "Turquia")
		So(StripAccents("Emiratos Árabes Unidos"), ShouldEqual, "Emiratos Arabes Unidos")
		So(StripAccents("Chile"), ShouldEqual, "Chile")
	})
}
