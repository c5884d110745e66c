package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSubmission(t *testing.T) {
	m := New()
	m.ObserveSubmission("default")
	m.ObserveSubmission("default")

	if got := testutil.ToFloat64(m.Submissions.WithLabelValues("default")); got != 2 {
		t.Fatalf("expected 2 submissions, got %v", got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/leaderboard", http.StatusOK, 3*time.Millisecond)
	m.ObserveLeaderboardBuild(time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, name := range []string{"http_requests_total", "leaderboard_build_duration_seconds"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in exposition", name)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveSubmission("quiz")
	m.ObserveLeaderboardBuild(time.Second)
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Second)
}
