package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/lectern/pkg/domain"
)

// Element outcome labels.
const (
	OutcomeRendered = "rendered"
	OutcomeSkipped  = "skipped"
)

// Metrics holds the service collectors.
type Metrics struct {
	requests      *prometheus.CounterVec
	buildDuration prometheus.Histogram
	elements      *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	gatherer      prometheus.Gatherer
}

// NewMetrics creates and registers the collectors on a fresh registry that also
// carries the Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := newMetrics()
	m.MustRegister(reg)
	m.gatherer = reg
	return m
}

// NewMetricsWith registers the collectors on reg. gatherer backs Handler.
func NewMetricsWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := newMetrics()
	m.MustRegister(reg)
	m.gatherer = gatherer
	return m
}

func newMetrics() *Metrics {
	return &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lectern_requests_total",
				Help: "HTTP requests by route and status code.",
			},
			[]string{"route", "status"},
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lectern_build_duration_seconds",
				Help:    "Time spent normalizing, rendering and encoding a deck.",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
		),
		elements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lectern_elements_total",
				Help: "Slide elements by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lectern_fetch_total",
				Help: "Image fetches by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

// MustRegister registers every collector on reg.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.requests, m.buildDuration, m.elements, m.fetches)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RequestServed counts one HTTP response.
func (m *Metrics) RequestServed(route string, status int) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// BuildObserved records a build duration.
func (m *Metrics) BuildObserved(d time.Duration) {
	m.buildDuration.Observe(d.Seconds())
}

// ElementRendered implements builder.Recorder.
func (m *Metrics) ElementRendered(kind domain.Kind) {
	m.elements.WithLabelValues(string(kind), OutcomeRendered).Inc()
}

// ElementSkipped implements builder.Recorder.
func (m *Metrics) ElementSkipped(kind domain.Kind) {
	m.elements.WithLabelValues(string(kind), OutcomeSkipped).Inc()
}

// FetchCompleted implements fetch.Recorder.
func (m *Metrics) FetchCompleted(outcome string) {
	m.fetches.WithLabelValues(outcome).Inc()
}
