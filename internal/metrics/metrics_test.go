package metrics

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/pthm/uniformcheck/internal/analyzer"
	"github.com/pthm/uniformcheck/internal/fit"
)

func analyze(input string, backend fit.Backend) *analyzer.Report {
	rep, _ := analyzer.New(backend, nil).Run(context.Background(), strings.NewReader(input))
	return rep
}

func TestRecorderObserve(t *testing.T) {
	fixed := time.Unix(1_760_000_000, 0)

	Convey("Given a recorder", t, func() {
		r := NewRecorder(WithClock(func() time.Time { return fixed }))

		Convey("When observing a skewed run with a backend", func() {
			r.Observe(analyze("INSTANCE:\t1\nINSTANCE:\t2\nRESPONSE:\t1\nRESPONSE:\t1\nRESPONSE:\t1\nRESPONSE:\t9\nSUM:\t4\n", fit.NewGonumBackend()))

			Convey("Then gauges reflect the report", func() {
				So(testutil.ToFloat64(r.lines.WithLabelValues("instance")), ShouldEqual, 2)
				So(testutil.ToFloat64(r.lines.WithLabelValues("response")), ShouldEqual, 4)
				So(testutil.ToFloat64(r.lines.WithLabelValues("ignored")), ShouldEqual, 1)
				So(testutil.ToFloat64(r.categories), ShouldEqual, 2)
				So(testutil.ToFloat64(r.responses), ShouldEqual, 4)
				So(testutil.ToFloat64(r.unlisted), ShouldEqual, 1)
				So(testutil.ToFloat64(r.applicable), ShouldEqual, 1)
				So(testutil.ToFloat64(r.degreesOfFreedom), ShouldEqual, 1)
				So(testutil.ToFloat64(r.expected), ShouldEqual, 2)
				So(testutil.ToFloat64(r.pValue), ShouldBeBetween, 0, 1)
				So(testutil.ToFloat64(r.rating), ShouldBeGreaterThanOrEqualTo, 0)
				So(testutil.ToFloat64(r.lastRun), ShouldEqual, float64(fixed.Unix()))
			})
		})

		Convey("When observing a run without a backend", func() {
			r.Observe(analyze("RESPONSE:\t1\nRESPONSE:\t2\n", nil))

			Convey("Then p-value is NaN and rating is unset", func() {
				So(math.IsNaN(testutil.ToFloat64(r.pValue)), ShouldBeTrue)
				So(testutil.ToFloat64(r.rating), ShouldEqual, -1)
				So(testutil.ToFloat64(r.chiSquare), ShouldEqual, 0)
			})
		})

		Convey("When observing a run with no responses", func() {
			r.Observe(analyze("INSTANCE:\t1\n", fit.NewGonumBackend()))

			Convey("Then only line counts are set", func() {
				So(testutil.ToFloat64(r.lines.WithLabelValues("instance")), ShouldEqual, 1)
				So(testutil.ToFloat64(r.responses), ShouldEqual, 0)
				So(testutil.ToFloat64(r.applicable), ShouldEqual, 0)
			})
		})
	})
}

func TestRecorderWriteFile(t *testing.T) {
	Convey("Given a recorder with a namespace and labels", t, func() {
		r := NewRecorder(WithNamespace("lb"), WithConstLabels(map[string]string{"service": "api"}))
		r.Observe(analyze("RESPONSE:\t1\nRESPONSE:\t2\nRESPONSE:\t2\n", fit.NewGonumBackend()))

		Convey("When writing the textfile", func() {
			path := filepath.Join(t.TempDir(), "uniformcheck.prom")
			err := r.WriteFile(path)
			data, readErr := os.ReadFile(path)

			Convey("Then it contains the namespaced gauges", func() {
				So(err, ShouldBeNil)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `lb_categories{service="api"} 2`)
				So(string(data), ShouldContainSubstring, `lb_responses{service="api"} 3`)
				So(string(data), ShouldContainSubstring, "# HELP lb_chi_square")
			})
		})

		Convey("When the target directory does not exist", func() {
			err := r.WriteFile(filepath.Join(t.TempDir(), "missing", "out.prom"))

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
