package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrsteppenwolf627/sentiment-api-mlops/pkg/analyzer"
)

// request statuses for the requests counter.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Set bundles the collectors of the service on a private registry,
// so that tests can build independent Sets without collisions.
type Set struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	predictions *prometheus.CounterVec
}

func New() *Set {
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_api_requests_total",
			Help: "Total requests received, by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentiment_api_request_duration_seconds",
			Help:    "Request duration in seconds, by endpoint.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	predictions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_api_predictions_total",
			Help: "Total predictions, by sentiment.",
		},
		[]string{"sentiment"},
	)

	// expose all sentiment series from the start, not only after first hit
	for _, v := range analyzer.Verdicts() {
		predictions.WithLabelValues(string(v))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(requests, duration, predictions)

	return &Set{
		registry:    registry,
		requests:    requests,
		duration:    duration,
		predictions: predictions,
	}
}

// RequestDone counts a finished request.
func (s *Set) RequestDone(endpoint string, status string) {
	s.requests.WithLabelValues(endpoint, status).Inc()
}

// ObserveDuration records the latency of a request in seconds.
func (s *Set) ObserveDuration(endpoint string, seconds float64) {
	s.duration.WithLabelValues(endpoint).Observe(seconds)
}

// Predicted counts a prediction outcome.
func (s *Set) Predicted(verdict analyzer.Verdict) {
	s.predictions.WithLabelValues(string(verdict)).Inc()
}

// Handler serves the Prometheus text exposition of this Set.
func (s *Set) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// Gather exposes the underlying registry for tests.
func (s *Set) Gather() prometheus.Gatherer {
	return s.registry
}
