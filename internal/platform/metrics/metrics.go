// Package metrics agrupa los colectores Prometheus del servicio.
// Todos los métodos aceptan receptor nil para que los tests no necesiten registry.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Operations     *prometheus.CounterVec
	ReportDuration *prometheus.HistogramVec
	Requests       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pawcare",
			Name:      "operations_total",
			Help:      "Entries appended to the operation log, by type.",
		}, []string{"type"}),
		ReportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pawcare",
			Name:      "report_duration_seconds",
			Help:      "Time spent computing report summaries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"period"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pawcare",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.ReportDuration, m.Requests)
	}
	return m
}

func (m *Metrics) ObserveOperation(typ string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(typ).Inc()
}

func (m *Metrics) ObserveReport(period string, d time.Duration) {
	if m == nil {
		return
	}
	m.ReportDuration.WithLabelValues(period).Observe(d.Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
