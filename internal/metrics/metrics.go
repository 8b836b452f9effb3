// Package metrics exports the outcome of a run as Prometheus gauges, written
// in text exposition format for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pthm/uniformcheck/internal/analyzer"
)

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithConstLabels attaches labels to every metric, e.g. the service under test.
func WithConstLabels(labels map[string]string) Option {
	return func(r *Recorder) {
		if labels != nil {
			r.constLabels = labels
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// Recorder holds the gauges for a single run on a private registry.
type Recorder struct {
	namespace   string
	constLabels map[string]string
	now         func() time.Time
	registry    *prometheus.Registry

	lines            *prometheus.GaugeVec
	categories       prometheus.Gauge
	responses        prometheus.Gauge
	unlisted         prometheus.Gauge
	chiSquare        prometheus.Gauge
	degreesOfFreedom prometheus.Gauge
	expected         prometheus.Gauge
	pValue           prometheus.Gauge
	rating           prometheus.Gauge
	applicable       prometheus.Gauge
	lastRun          prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "uniformcheck",
		now:       time.Now,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.initializeMetrics()
	return r
}

func (r *Recorder) gauge(name, help string) prometheus.Gauge {
	return promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   r.namespace,
		Name:        name,
		Help:        help,
		ConstLabels: r.constLabels,
	})
}

func (r *Recorder) initializeMetrics() {
	r.lines = promauto.With(r.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   r.namespace,
		Name:        "input_lines",
		Help:        "Input lines by parsed kind (instance, response, ignored)",
		ConstLabels: r.constLabels,
	}, []string{"kind"})

	r.categories = r.gauge("categories", "Number of categories tested")
	r.responses = r.gauge("responses", "Total responses parsed")
	r.unlisted = r.gauge("unlisted_responses", "Responses whose category is not in the instance list")
	r.chiSquare = r.gauge("chi_square", "Chi-square statistic against a uniform distribution")
	r.degreesOfFreedom = r.gauge("degrees_of_freedom", "Degrees of freedom of the test")
	r.expected = r.gauge("expected_per_category", "Expected responses per category under uniformity")
	r.pValue = r.gauge("p_value", "Upper-tail p-value, NaN when no backend is available")
	r.rating = r.gauge("rating", "Randomness rating: 0 poor, 1 fair, 2 good, 3 excellent, -1 unrated")
	r.applicable = r.gauge("test_applicable", "1 when at least two categories were tested")
	r.lastRun = r.gauge("last_run_timestamp_seconds", "Unix time of the last run")
}

// Observe records rep. A Report with a nil Table only updates line counts.
func (r *Recorder) Observe(rep *analyzer.Report) {
	r.lines.WithLabelValues("instance").Set(float64(rep.Parse.Instances))
	r.lines.WithLabelValues("response").Set(float64(rep.Parse.Responses))
	r.lines.WithLabelValues("ignored").Set(float64(rep.Parse.Ignored))
	r.lastRun.Set(float64(r.now().Unix()))
	r.rating.Set(-1)

	if rep.Table == nil {
		return
	}
	r.categories.Set(float64(rep.Table.K()))
	r.responses.Set(float64(rep.Table.Total))
	r.unlisted.Set(float64(rep.Table.Total - rep.Table.Listed()))

	if !rep.Applicable {
		return
	}
	r.applicable.Set(1)
	r.chiSquare.Set(rep.Fit.ChiSquare)
	r.degreesOfFreedom.Set(float64(rep.Fit.DegreesOfFreedom))
	r.expected.Set(rep.Fit.Expected)
	if rep.Fit.HasPValue {
		r.pValue.Set(rep.Fit.PValue)
	} else {
		r.pValue.Set(math.NaN())
	}
	if rep.HasRating {
		r.rating.Set(float64(rep.Rating))
	}
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes all metrics to path atomically.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
