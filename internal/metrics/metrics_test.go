package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(transitions.WithLabelValues("Planifié", "Effectué"))

	RecordTransition("Planifié", "Effectué")

	after := testutil.ToFloat64(transitions.WithLabelValues("Planifié", "Effectué"))
	assert.Equal(t, before+1, after)
}

func TestRecordArchiveRun(t *testing.T) {
	before := testutil.ToFloat64(archived.WithLabelValues("test"))

	RecordArchiveRun("test", 4)

	assert.Equal(t, before+4, testutil.ToFloat64(archived.WithLabelValues("test")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveHTTP(http.MethodGet, "/api/appointments", 200, 10*time.Millisecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rdv_http_requests_total")
}
