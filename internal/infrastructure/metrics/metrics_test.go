package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
)

var _ port.MetricsRecorder = (*Metrics)(nil)

func value(t *testing.T, metric prometheus.Metric) float64 {
	t.Helper()

	var pb dto.Metric
	require.NoError(t, metric.Write(&pb))
	switch {
	case pb.Counter != nil:
		return pb.Counter.GetValue()
	case pb.Gauge != nil:
		return pb.Gauge.GetValue()
	default:
		t.Fatalf("unsupported metric %v", &pb)
		return 0
	}
}

func TestRecorder(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CacheHit("machines")
	m.CacheHit("machines")
	m.CacheMiss("machines")
	m.CacheRefresh("history", errors.New("boom"))
	m.RecordsSkipped("machines", 3)
	m.FleetStatus(map[string]int{"Critical": 2, "Healthy": 5})
	m.EventPublished("maintenance.alerts.dismiss", nil)
	m.RateLimited()

	assert.Equal(t, 2.0, value(t, m.CacheRequests.WithLabelValues("machines", "hit")))
	assert.Equal(t, 1.0, value(t, m.CacheRequests.WithLabelValues("machines", "miss")))
	assert.Equal(t, 1.0, value(t, m.CacheRefreshes.WithLabelValues("history", "error")))
	assert.Equal(t, 3.0, value(t, m.RecordsSkippedTotal.WithLabelValues("machines")))
	assert.Equal(t, 2.0, value(t, m.FleetMachines.WithLabelValues("Critical")))
	assert.Equal(t, 1.0, value(t, m.EventsPublished.WithLabelValues("maintenance.alerts.dismiss", "ok")))
	assert.Equal(t, 1.0, value(t, m.RateLimitDropped))
}

func TestMiddlewareUsesPattern(t *testing.T) {
	m := New(nil)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/machines/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := m.Middleware(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/machines/NPM-DX_01", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))

	assert.Equal(t, 1.0, value(t, m.RequestsTotal.WithLabelValues("GET /api/v1/machines/{id}", "GET", "404")))
	assert.Equal(t, 1.0, value(t, m.RequestsTotal.WithLabelValues("other", "GET", "404")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(nil)
	m.CacheHit("machines")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `maintenance_dashboard_snapshot_cache_requests_total{dataset="machines",result="hit"} 1`)
}
