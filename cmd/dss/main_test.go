package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	Convey("Given the dss command tree", t, func() {
		path := filepath.Join(t.TempDir(), "sample.csv")
		So(os.WriteFile(path, []byte("pais;acceso;velocidad\nColombia;73,5;25\nChile;90,2;60\n"), 0o600), ShouldBeNil)

		Convey("compare scores a local file as CSV", func() {
			out, err := execute("compare", "--color", "off", "--format", "csv", "--file", path)
			So(err, ShouldBeNil)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			So(lines, ShouldHaveLength, 3)
			So(lines[0], ShouldStartWith, "country,year,use_pct")
			So(lines[1], ShouldStartWith, "Chile,")
		})

		Convey("compare renders a table by default", func() {
			out, err := execute("compare", "--color", "off", "--format", "table", "--file", path)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Ranking")
			So(out, ShouldContainSubstring, "Weights")
		})

		Convey("compare rejects an unknown format", func() {
			_, err := execute("compare", "--format", "xml", "--file", path)
			So(err, ShouldNotBeNil)
		})

		Convey("resolve maps names to ISO-3 codes", func() {
			out, err := execute("resolve", "--color", "off", "Colombia", "México", "chl")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "COL")
			So(out, ShouldContainSubstring, "MEX")
			So(out, ShouldContainSubstring, "CHL")
		})

		Convey("resolve fails when a name is unknown", func() {
			out, err := execute("resolve", "--color", "off", "Narnia")
			So(err, ShouldNotBeNil)
			So(out, ShouldContainSubstring, "unresolved")
		})

		Convey("check needs countries or a file", func() {
			_, err := execute("check", "--url", "http://127.0.0.1:1")
			So(err, ShouldNotBeNil)
		})
	})
}
