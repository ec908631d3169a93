package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/paycore-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := NewRecorder(registry)

	recorder.RegistrationCompleted(service.OutcomeRegistered)
	recorder.RegistrationCompleted(service.OutcomeRegistered)
	recorder.RegistrationCompleted(service.OutcomePhoneTaken)
	recorder.ChargeCompleted(service.OutcomeApproved, "USD")
	recorder.ChargeCompleted(service.OutcomeCurrencyNotSupported, "XYZ")
	recorder.GatewayCallObserved(150 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.registrations.WithLabelValues(service.OutcomeRegistered)))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.registrations.WithLabelValues(service.OutcomePhoneTaken)))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.charges.WithLabelValues(service.OutcomeApproved, "USD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.charges.WithLabelValues(service.OutcomeCurrencyNotSupported, "other")))
	assert.Equal(t, 1, testutil.CollectAndCount(recorder.gatewayDuration))
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	httpMetrics := NewHTTPMetrics(registry)

	r := chi.NewRouter()
	r.Use(httpMetrics.Middleware)
	r.Get("/api/v1/payment/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/payment/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	expected := `
# HELP paycore_http_requests_total The total number of HTTP requests
# TYPE paycore_http_requests_total counter
paycore_http_requests_total{method="GET",route="/api/v1/payment/{id}",status="404"} 2
`
	err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "paycore_http_requests_total")
	assert.NoError(t, err)
}
