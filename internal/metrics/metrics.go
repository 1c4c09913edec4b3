// Package metrics exports Prometheus counters for imports and deletions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "highlights"

// OutcomeSuccess labels a successful operation. Failures are labelled with
// their error kind.
const OutcomeSuccess = "success"

// Metrics holds the application counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Imports  *prometheus.CounterVec
	Imported *prometheus.CounterVec
	Skipped  *prometheus.CounterVec
	Deletes  *prometheus.CounterVec
}

// New registers the counters plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Imports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Import attempts by mode and outcome",
		}, []string{"mode", "outcome"}),
		Imported: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imported_total",
			Help:      "Highlights stored by imports",
		}, []string{"mode"}),
		Skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_total",
			Help:      "Records rejected by per-record validation",
		}, []string{"mode"}),
		Deletes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletes_total",
			Help:      "Highlight deletions by outcome",
		}, []string{"outcome"}),
	}
}

// RecordImport counts one import attempt. outcome is OutcomeSuccess or an
// error kind.
func (m *Metrics) RecordImport(mode, outcome string, imported, skipped int) {
	m.Imports.WithLabelValues(mode, outcome).Inc()
	if outcome != OutcomeSuccess {
		return
	}
	m.Imported.WithLabelValues(mode).Add(float64(imported))
	m.Skipped.WithLabelValues(mode).Add(float64(skipped))
}

func (m *Metrics) RecordDelete(outcome string) {
	m.Deletes.WithLabelValues(outcome).Inc()
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
