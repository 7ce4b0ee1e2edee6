package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
)

var _ docstore.Observer = (*Collector)(nil)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestRecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, nil)

	c.RecordRequest(http.MethodGet, "/users", 200, time.Millisecond)
	c.RecordRequest(http.MethodGet, "/users", 200, time.Millisecond)
	c.RecordRequest(http.MethodGet, "", 404, time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, reg, "portal_http_requests_total", map[string]string{"route": "/users", "status": "200"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "portal_http_requests_total", map[string]string{"route": "unmatched"}))
}

func TestObserveStoreOp(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, nil)

	c.ObserveStoreOp("list", "courses", nil, time.Millisecond)
	c.ObserveStoreOp("update", "users", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, reg, "portal_store_operations_total", map[string]string{"op": "list", "outcome": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "portal_store_operations_total", map[string]string{"op": "update", "outcome": "error"}))
}

func TestHandlerExposesSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg, func() int { return 3 })

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "portal_active_sessions 3")
}
