// Package metrics exposes Prometheus collectors for the resolver.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wander"

// Metrics owns a private registry so tests can build as many as they need.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	cacheLookups     *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	resolveDuration  *prometheus.HistogramVec
	gazetteerPlaces  *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by namespace and result (hit, miss, error).",
		}, []string{"namespace", "result"}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "External places provider calls by outcome (ok, error, disabled).",
		}, []string{"outcome"}),
		resolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Time to build a suggestion response, by response source.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		gazetteerPlaces: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gazetteer_places",
			Help:      "Entries in the loaded gazetteer, by dataset.",
		}, []string{"dataset"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.cacheLookups,
		m.providerRequests,
		m.resolveDuration,
		m.gazetteerPlaces,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry gives tests access to the underlying collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) CacheLookup(ns, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(ns, result).Inc()
}

func (m *Metrics) ProviderRequest(outcome string) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveResolve(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.resolveDuration.WithLabelValues(source).Observe(d.Seconds())
}

// SetGazetteer records dataset sizes after a reload.
func (m *Metrics) SetGazetteer(counts map[string]int) {
	if m == nil {
		return
	}
	for dataset, n := range counts {
		m.gazetteerPlaces.WithLabelValues(dataset).Set(float64(n))
	}
}
