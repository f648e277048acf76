// ABOUTME: Prometheus collectors for the HTTP API and plan generation.
// ABOUTME: Each Metrics owns its registry so servers and tests never share global state.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "coach"

// Metrics holds the registry and every collector the service reports.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	generations  *prometheus.CounterVec
	genDuration  *prometheus.HistogramVec
	tokens       *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method, and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_generations_total",
			Help:      "Plan generation attempts by plan type and outcome.",
		}, []string{"plan", "outcome"}),
		genDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_generation_duration_seconds",
			Help:      "End-to-end plan generation latency by plan type.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
		}, []string{"plan"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_tokens_total",
			Help:      "Model tokens consumed by direction.",
		}, []string{"direction"}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.generations,
		m.genDuration,
		m.tokens,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one handled request.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveGeneration records one pipeline run. outcome is "ok" or an error kind.
func (m *Metrics) ObserveGeneration(plan, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(plan, outcome).Inc()
	m.genDuration.WithLabelValues(plan).Observe(elapsed.Seconds())
}

// AddTokens records model token usage.
func (m *Metrics) AddTokens(input, output int) {
	if m == nil {
		return
	}
	m.tokens.WithLabelValues("input").Add(float64(input))
	m.tokens.WithLabelValues("output").Add(float64(output))
}

// GenerationCount returns the counter for plan and outcome, for tests and reports.
func (m *Metrics) GenerationCount(plan, outcome string) prometheus.Counter {
	return m.generations.WithLabelValues(plan, outcome)
}
