package dashboard

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "multitool"

// result label values
const (
	resultOK           = "ok"
	resultInvalidInput = "invalid_input"
	resultNotFound     = "not_found"
	resultError        = "error"
)

// Metrics counts page requests by outcome and tracks the predicted values served
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	predictions *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "Page and api requests by tool and result.",
			},
			[]string{"mode", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "Time spent computing and rendering a tool response.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"mode"},
		),
		predictions: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "prediction_value",
				Help:      "Predicted values served by the regression tools.",
				Buckets:   []float64{0, 10, 25, 50, 75, 100, 2500, 5000, 7500, 10000},
			},
			[]string{"mode"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.predictions,
	)
	return m
}

func (m *Metrics) observeRequest(mode, result string, seconds float64) {
	m.requests.WithLabelValues(mode, result).Inc()
	m.duration.WithLabelValues(mode).Observe(seconds)
}

func (m *Metrics) observePrediction(mode string, value float64) {
	m.predictions.WithLabelValues(mode).Observe(value)
}

// Handler exposes the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry the dashboard metrics are registered to
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
