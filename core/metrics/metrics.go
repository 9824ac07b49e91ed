package metrics

import (
	"net/http"

	"collbool/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records engine activity as Prometheus collectors on its own registry.
// A disabled instance accepts every call and records nothing.
type Metrics struct {
	config Config

	passes        *prometheus.CounterVec
	actions       *prometheus.CounterVec
	hostErrors    prometheus.Counter
	passObjects   prometheus.Histogram
	bakes         *prometheus.CounterVec
	bakedEffects  *prometheus.CounterVec
	lastPassDirty prometheus.Gauge

	registry *prometheus.Registry
}

var _ reconcile.Recorder = (*Metrics)(nil)

// New creates the collectors described by cfg.
func New(cfg Config) *Metrics {
	if !cfg.Enabled {
		return &Metrics{config: cfg}
	}

	ns := cfg.Namespace
	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "passes_total",
				Help:      "Total number of reconcile passes by outcome",
			},
			[]string{"outcome"},
		),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "actions_total",
				Help:      "Total number of scene mutations performed by the engine",
			},
			[]string{"type"},
		),
		hostErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "host_errors_total",
				Help:      "Total number of mutations rejected by the host",
			},
		),
		passObjects: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "pass_objects",
				Help:      "Number of enabled objects reconciled per pass",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		bakes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "bakes_total",
				Help:      "Total number of bakes by status",
			},
			[]string{"status"},
		),
		bakedEffects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "baked_effects_total",
				Help:      "Total number of generated effects handled by bakes",
			},
			[]string{"result"},
		),
		lastPassDirty: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "last_pass_changed",
				Help:      "1 when the most recent pass mutated the scene",
			},
		),
	}

	registry.MustRegister(
		m.passes,
		m.actions,
		m.hostErrors,
		m.passObjects,
		m.bakes,
		m.bakedEffects,
		m.lastPassDirty,
	)

	return m
}

// Enabled reports whether collectors are registered.
func (m *Metrics) Enabled() bool {
	return m.registry != nil
}

// Path returns the configured exposition route.
func (m *Metrics) Path() string {
	return m.config.Path
}

// Registry returns the underlying registry, nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// PassCompleted records a finished pass.
func (m *Metrics) PassCompleted(report *reconcile.PassReport) {
	if !m.Enabled() || report == nil {
		return
	}
	outcome := "clean"
	if report.Changed() {
		outcome = "changed"
		m.lastPassDirty.Set(1)
	} else {
		m.lastPassDirty.Set(0)
	}
	m.passes.WithLabelValues(outcome).Inc()
	m.passObjects.Observe(float64(report.Objects))
	m.hostErrors.Add(float64(len(report.Errors)))
	for _, a := range report.Actions {
		m.actions.WithLabelValues(string(a.Type)).Inc()
	}
}

// PassSuspended records a pass skipped by an active guard.
func (m *Metrics) PassSuspended() {
	if !m.Enabled() {
		return
	}
	m.passes.WithLabelValues("suspended").Inc()
}

// BakeCompleted records a bake attempt.
func (m *Metrics) BakeCompleted(report *reconcile.BakeReport, err error) {
	if !m.Enabled() {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.bakes.WithLabelValues(status).Inc()
	if report == nil {
		return
	}
	m.bakedEffects.WithLabelValues("applied").Add(float64(report.Applied))
	m.bakedEffects.WithLabelValues("dropped").Add(float64(report.Dropped))
	for _, a := range report.Actions {
		m.actions.WithLabelValues(string(a.Type)).Inc()
	}
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if !m.Enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
