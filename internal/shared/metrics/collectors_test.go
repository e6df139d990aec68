package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/radieske/paris-web-client/internal/shared/metrics"
)

func TestClientCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewClient(reg)

	m.ObserveRequest("login", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("login", 0, time.Second)
	m.ObserveTransition("authenticated", "login")
	m.ActivityPublished("bet_voted")
	m.ActivityFailed("bet_voted")
	m.ActivityDropped("session_changed")
	m.SetWSClients(2)

	expected := `
# HELP paris_api_requests_total chamadas ao backend por operação e status HTTP
# TYPE paris_api_requests_total counter
paris_api_requests_total{code="200",op="login"} 1
paris_api_requests_total{code="transport_error",op="login"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "paris_api_requests_total"); err != nil {
		t.Errorf("unexpected requests metric: %v", err)
	}

	gauge := `
# HELP paris_ws_clients conexões websocket abertas no servidor local
# TYPE paris_ws_clients gauge
paris_ws_clients 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(gauge), "paris_ws_clients"); err != nil {
		t.Errorf("unexpected ws gauge: %v", err)
	}

	n, err := testutil.GatherAndCount(reg, "paris_activity_events_total")
	if err != nil || n != 3 {
		t.Errorf("expected 3 activity series, got %d %v", n, err)
	}
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	metrics.HealthHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("expected ok, got %d %q", rec.Code, rec.Body.String())
	}
}
