package web

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/diillson/weekly-usage-report/internal/application/usecase"
)

// Metrics são os contadores expostos em /metrics.
type Metrics struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	rowsCounted prometheus.Counter
	unresolved  *prometheus.CounterVec
}

// Outcome labels of usage_report_runs_total.
const (
	outcomeOK       = "ok"
	outcomeNoData   = "no_data"
	outcomeRejected = "rejected"
)

// NewMetrics registers the report counters on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "usage_report_runs_total",
			Help: "Report runs by outcome.",
		}, []string{"outcome"}),
		rowsCounted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "usage_report_rows_counted_total",
			Help: "Report rows added to a resource group total.",
		}),
		unresolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "usage_report_unresolved_total",
			Help: "Distinct unresolved identifiers per run, by kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.runs, m.rowsCounted, m.unresolved)
	return m
}

// Registry returns the registry the counters live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observe(result *usecase.ReportResult, err error) {
	switch {
	case err != nil:
		m.runs.WithLabelValues(outcomeRejected).Inc()
		return
	case result.NoData:
		m.runs.WithLabelValues(outcomeNoData).Inc()
	default:
		m.runs.WithLabelValues(outcomeOK).Inc()
	}
	m.rowsCounted.Add(float64(result.Summary.Counted))
	m.unresolved.WithLabelValues("project").Add(float64(len(result.Unresolved.Projects)))
	m.unresolved.WithLabelValues("customer").Add(float64(len(result.Unresolved.Customers)))
}
