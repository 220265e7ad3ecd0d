package obs_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/noah-isme/seller-insights/internal/obs"
)

func TestHTTPMetricsLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("insights", []float64{1, 10}, registry)
	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	req = req.WithContext(obs.WithRoutePattern(req.Context(), "/health/ready"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rr.Code)
	}

	total := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodGet, "/health/ready", "204"))
	if total != 1 {
		t.Fatalf("expected counter to be 1, got %v", total)
	}

	if samples := testutil.CollectAndCount(metrics.ReqDur); samples == 0 {
		t.Fatal("expected histogram sample")
	}

	if val := testutil.ToFloat64(metrics.InFlight); val != 0 {
		t.Fatalf("expected no in-flight requests, got %v", val)
	}
}

func TestRoutePatternContext(t *testing.T) {
	ctx := obs.WithRoutePattern(nil, "/api/v1/reports/sellers")
	if got := obs.RoutePatternFromContext(ctx); got != "/api/v1/reports/sellers" {
		t.Fatalf("unexpected pattern %q", got)
	}
	if got := obs.RoutePatternFromContext(nil); got != "" {
		t.Fatalf("expected empty pattern, got %q", got)
	}
}
