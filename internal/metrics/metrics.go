package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Airboss
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Business Metrics
	AssignmentsTotal     prometheus.Counter
	EvaluationsTotal     prometheus.CounterVec
	CurrencyRowsImported prometheus.Counter
	CalendarExportsTotal prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airboss_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airboss_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airboss_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Business Metrics
		AssignmentsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "airboss_assignments_total",
				Help: "Total pilot-to-event assignments produced by the scheduler",
			},
		),
		EvaluationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airboss_evaluations_total",
				Help: "Total readiness evaluations by resulting qualification status",
			},
			[]string{"status"},
		),
		CurrencyRowsImported: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "airboss_currency_rows_imported_total",
				Help: "Total currency records created by spreadsheet imports",
			},
		),
		CalendarExportsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "airboss_calendar_exports_total",
				Help: "Total ICS feeds rendered",
			},
		),
	}
}
