package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.ObserveRequest("GET /", http.StatusOK, 3*time.Millisecond)
	m.ObserveRequest("GET /", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest("GET /", http.StatusNotFound, time.Millisecond)
	m.ObserveUpstream("ok")
	m.ObserveUpstream("transport_error")
	m.ObserveUpstream("transport_error")

	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET /", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET /", "404")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.upstream.WithLabelValues("transport_error")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveUpstream("decode_error")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `minimart_upstream_queries_total{outcome="decode_error"} 1`)
}
