package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Submissions      *prometheus.CounterVec
	LeaderboardBuild prometheus.Histogram
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_submissions_total",
				Help: "Total number of scored quiz submissions",
			},
			[]string{"quiz"},
		),
		LeaderboardBuild: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leaderboard_build_duration_seconds",
			Help:    "Time spent ranking attempts into a leaderboard",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
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
				Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2},
			},
			[]string{"method", "endpoint"},
		),
	}
	m.registry.MustRegister(
		m.Submissions,
		m.LeaderboardBuild,
		m.RequestCounter,
		m.RequestDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveSubmission counts a scored submission for quizID.
func (m *Metrics) ObserveSubmission(quizID string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(quizID).Inc()
}

// ObserveLeaderboardBuild records how long a leaderboard took to build.
func (m *Metrics) ObserveLeaderboardBuild(d time.Duration) {
	if m == nil {
		return
	}
	m.LeaderboardBuild.Observe(d.Seconds())
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
