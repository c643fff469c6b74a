package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the service collectors. It satisfies app.SubmissionObserver.
type Metrics struct {
	registry *prometheus.Registry

	Submissions      *prometheus.CounterVec
	SubmissionPoints prometheus.Histogram
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_submissions_total",
				Help: "Quiz submission attempts by outcome",
			},
			[]string{"outcome"},
		),
		SubmissionPoints: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quiz_submission_points",
				Help:    "Points of accepted submissions",
				Buckets: prometheus.LinearBuckets(-20, 10, 10),
			},
		),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
			},
			[]string{"method", "endpoint"},
		),
	}
	m.registry.MustRegister(
		m.Submissions,
		m.SubmissionPoints,
		m.RequestCounter,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveSubmission(outcome string, points int) {
	m.Submissions.WithLabelValues(outcome).Inc()
	if outcome == "accepted" {
		m.SubmissionPoints.Observe(float64(points))
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
