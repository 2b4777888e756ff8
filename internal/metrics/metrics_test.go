package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler(t *testing.T) {
	RequestsTotal.WithLabelValues("static", "GET", "200").Inc()
	RequestDuration.WithLabelValues("upstream").Observe(42)
	UpstreamErrors.WithLabelValues("dial").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"wsgate_requests_total",
		"wsgate_request_duration_ms",
		"wsgate_upstream_errors_total",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}
