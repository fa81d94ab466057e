// Package metrics provides Prometheus metrics for aidctl runs.
// A CLI process is short-lived, so metrics are written to a node_exporter
// textfile at exit instead of being scraped.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for one run
type Metrics struct {
	Registry *prometheus.Registry

	// API request metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Import metrics
	ImportRowsTotal *prometheus.CounterVec

	// Listing metrics
	RecordsListed *prometheus.GaugeVec
}

// New creates the metrics on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{Registry: reg}

	m.APIRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aidctl_api_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"method", "route", "status"},
	)

	m.APIRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aidctl_api_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.ImportRowsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aidctl_import_rows_total",
			Help: "Spreadsheet rows processed by outcome",
		},
		[]string{"entity", "outcome"},
	)

	m.RecordsListed = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aidctl_records_listed",
			Help: "Records in the last filtered view by record type",
		},
		[]string{"record"},
	)

	return m
}

// ObserveRequest records one API request. Status 0 means the request never got a response.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.APIRequestsTotal.WithLabelValues(method, route, label).Inc()
	m.APIRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveImportRow records one import row outcome
func (m *Metrics) ObserveImportRow(entity, outcome string) {
	m.ImportRowsTotal.WithLabelValues(entity, outcome).Inc()
}

// SetListed records the size of a filtered view
func (m *Metrics) SetListed(record string, n int) {
	m.RecordsListed.WithLabelValues(record).Set(float64(n))
}

// WriteTextfile writes every metric to path in the Prometheus text format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
