package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestPrometheusHandler_ServesMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", prometheusHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, w.Code)
	require.NotEmpty(t, w.Body.String())
}

func TestComputeApproximateRequestSize_CountsHeaders(t *testing.T) {
	r := httptest.NewRequest("POST", "http://example.com/payments", strings.NewReader("{}"))

	before := computeApproximateRequestSize(r)
	require.Greater(t, before, 0)

	r.Header.Set("X-Request-ID", "abc")
	after := computeApproximateRequestSize(r)
	require.Equal(t, before+len("X-Request-ID")+len("abc"), after)
}

func TestMillisecondsSince(t *testing.T) {
	elapsed := MillisecondsSince(time.Now().Add(-time.Second))
	require.GreaterOrEqual(t, elapsed, 1000.0)
}
