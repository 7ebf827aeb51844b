// Package metrics counts evaluator and cache activity for one run.
//
// A Recorder owns a private Prometheus registry; nothing is served over
// HTTP. `sicplings verify --metrics-file` writes the registry in the text
// exposition format so CI jobs can pick it up. A nil *Recorder is valid and
// records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sicplings"

// Cache lookup outcomes.
const (
	LookupHit    = "hit"
	LookupMiss   = "miss"
	LookupMarker = "marker"
	LookupGone   = "unreadable"
)

// Recorder holds the counters and histograms for a run.
type Recorder struct {
	registry     *prometheus.Registry
	evaluations  *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	toolFailures *prometheus.CounterVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Full evaluator runs by exercise mode and resulting status.",
		}, []string{"mode", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Status cache lookups by outcome.",
		}, []string{"result"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "toolchain_duration_seconds",
			Help:      "Wall time of external toolchain invocations.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"step"}),
		toolFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toolchain_launch_failures_total",
			Help:      "Toolchain invocations that could not be started.",
		}, []string{"step"}),
	}
	r.registry.MustRegister(r.evaluations, r.cacheLookups, r.toolDuration, r.toolFailures)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Evaluation counts one full evaluator run.
func (r *Recorder) Evaluation(mode, status string) {
	if r == nil {
		return
	}
	r.evaluations.WithLabelValues(mode, status).Inc()
}

// CacheLookup counts one status cache lookup with the given outcome.
func (r *Recorder) CacheLookup(result string) {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// ToolRun records the duration of one toolchain step ("lint" or "test").
func (r *Recorder) ToolRun(step string, d time.Duration) {
	if r == nil {
		return
	}
	r.toolDuration.WithLabelValues(step).Observe(d.Seconds())
}

// ToolLaunchFailure counts a toolchain step that could not be started.
func (r *Recorder) ToolLaunchFailure(step string) {
	if r == nil {
		return
	}
	r.toolFailures.WithLabelValues(step).Inc()
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
