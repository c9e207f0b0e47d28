package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(AccessOutcomes.WithLabelValues("granted"))
	RecordAccess("granted")
	assert.Equal(t, before+1, testutil.ToFloat64(AccessOutcomes.WithLabelValues("granted")))

	beforeHTTP := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/health", "200"))
	RecordHTTPRequest("GET", "/health", "200")
	assert.Equal(t, beforeHTTP+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/health", "200")))

	beforeCache := testutil.ToFloat64(MembershipCache.WithLabelValues("hit"))
	RecordCacheLookup("hit")
	assert.Equal(t, beforeCache+1, testutil.ToFloat64(MembershipCache.WithLabelValues("hit")))

	ObserveFacilitator("verify", "ok", 15*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(FacilitatorLatency), 1)
}

func TestHandler_ExposesRegistry(t *testing.T) {
	RecordAccess("challenge")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "waitlist_access_outcomes_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
