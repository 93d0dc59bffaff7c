package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ObserveBackend(t *testing.T) {
	m := NewManager()

	m.ObserveBackend("categories", 10*time.Millisecond, nil)
	m.ObserveBackend("categories", 20*time.Millisecond, errors.New("down"))
	m.ObserveBackend("categories", 5*time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.backendRequests.WithLabelValues("categories", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendRequests.WithLabelValues("categories", OutcomeError)))
}

func TestManager_FallbackAndHTTP(t *testing.T) {
	m := NewManager(WithNamespace("test"), WithSubsystem("sf"))

	m.IncFallback("home")
	m.IncFallback("home")
	m.ObserveHTTP(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.loaderFallbacks.WithLabelValues("home")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/", "200")))
}

func TestManager_NilSafe(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.ObserveBackend("x", time.Second, nil)
		m.IncFallback("home")
		m.ObserveHTTP("GET", "/", 200, time.Second)
	})
}

func TestManager_Handler(t *testing.T) {
	m := NewManager()
	m.IncFallback("offers")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `casamoreno_storefront_loader_fallbacks_total{page="offers"} 1`)
}
