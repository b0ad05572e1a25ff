package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManager(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(reg), WithNamespace("test"))

		Convey("Recording calls should not panic", func() {
			So(func() {
				m.RecordComparison("api", "ok", 12)
				m.RecordComparisonSize(3)
				m.RecordUpstreamRequest("IT.NET.USER.ZS", "ok", 40)
				m.RecordUpstreamRetry()
				m.UpdateBreakerState(2)
				m.RecordCacheHit("memory")
				m.RecordCacheMiss("memory")
				m.RecordUploadRows(10)
				m.RecordUploadError("no_rows")
				m.RecordHTTPRequest("/api/indicators", "GET", "200", 15)
				m.RecordHTTPError("/api/indicators", "GET", "bad_request", "warning")
				m.UpdateSystem(1024, 8)
				m.RecordGCPause(0.3)
			}, ShouldNotPanic)
		})

		Convey("Counters should reflect recorded values", func() {
			m.RecordComparison("upload", "ok", 5)
			m.RecordComparison("upload", "ok", 7)
			So(testutil.ToFloat64(m.comparisons.WithLabelValues("upload", "ok")), ShouldEqual, 2)

			m.RecordCacheHit("redis")
			So(testutil.ToFloat64(m.cacheHits.WithLabelValues("redis")), ShouldEqual, 1)
		})
	})

	Convey("Given a disabled metrics manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))

		Convey("Recording should leave counters untouched", func() {
			m.RecordUploadError("malformed")
			So(testutil.ToFloat64(m.uploadErrors.WithLabelValues("malformed")), ShouldEqual, 0)
		})
	})
}

func TestManagerOptions(t *testing.T) {
	Convey("Given a manager with a subsystem, buckets and constant labels", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithPrometheusRegistry(reg),
			WithNamespace("dss"),
			WithSubsystem("edge"),
			WithHistogramBuckets([]float64{10, 100}),
			WithConstLabels(map[string]string{"env": "test"}),
		)
		m.RecordComparison("api", "ok", 42)

		families, err := reg.Gather()
		So(err, ShouldBeNil)
		byName := map[string]int{}
		for i, f := range families {
			byName[f.GetName()] = i
		}

		Convey("Names carry the namespace and subsystem", func() {
			_, ok := byName["dss_edge_comparisons_total"]
			So(ok, ShouldBeTrue)
		})

		Convey("Every series carries the constant labels", func() {
			counter := families[byName["dss_edge_comparisons_total"]].GetMetric()[0]
			labels := map[string]string{}
			for _, lp := range counter.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			So(labels["env"], ShouldEqual, "test")
			So(labels["source"], ShouldEqual, "api")
		})

		Convey("Latency histograms use the configured buckets", func() {
			i, ok := byName["dss_edge_comparison_duration_milliseconds"]
			So(ok, ShouldBeTrue)
			h := families[i].GetMetric()[0].GetHistogram()
			So(h.GetBucket(), ShouldHaveLength, 2)
			So(h.GetBucket()[0].GetUpperBound(), ShouldEqual, 10)
			So(h.GetSampleCount(), ShouldEqual, 1)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Global helpers should record on the custom registry", t, func() {
		So(func() {
			RecordComparison("rows", "ok", 1)
			RecordCacheMiss("none")
			RecordHTTPRequest("/healthz", "GET", "200", 1)
		}, ShouldNotPanic)

		families, err := GetRegistry().Gather()
		So(err, ShouldBeNil)
		So(len(families), ShouldBeGreaterThan, 0)
	})
}
