// Package metrics exposes Prometheus collectors for the matching API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	results         *prometheus.HistogramVec
	catalogSize     prometheus.Gauge
}

// New registers the collectors on a private registry so tests can build as
// many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ecofashion",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ecofashion",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ecofashion",
			Name:      "engine_results",
			Help:      "Number of products returned per engine operation.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}, []string{"operation"}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ecofashion",
			Name:      "catalog_products",
			Help:      "Products available in the loaded catalog.",
		}),
	}
	m.registry.MustRegister(m.requests, m.requestDuration, m.results, m.catalogSize)
	return m
}

func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveResults records how many items an engine operation produced
// ("recommend", "similar", "compare").
func (m *Metrics) ObserveResults(operation string, n int) {
	m.results.WithLabelValues(operation).Observe(float64(n))
}

func (m *Metrics) SetCatalogSize(n int) {
	m.catalogSize.Set(float64(n))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
