package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*echo.Echo, *Metrics) {
	t.Helper()
	m := NewMetrics(prometheus.NewRegistry())

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/questions/:id", func(c echo.Context) error {
		if c.Param("id") == "0" {
			return echo.ErrNotFound
		}
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", m.Handler())
	return e, m
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMiddleware(t *testing.T) {
	e, m := newServer(t)

	assert.Equal(t, http.StatusOK, get(e, "/questions/1").Code)
	assert.Equal(t, http.StatusOK, get(e, "/questions/2").Code)
	assert.Equal(t, http.StatusNotFound, get(e, "/questions/0").Code)
	assert.Equal(t, http.StatusNotFound, get(e, "/nope").Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/questions/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/questions/:id", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight))
	assert.Equal(t, 3, testutil.CollectAndCount(m.RequestCounter))
}

func TestHandler(t *testing.T) {
	e, _ := newServer(t)
	get(e, "/questions/1")

	rec := get(e, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `trivia_http_requests_total{endpoint="/questions/:id",method="GET",status="200"} 1`), body)
	assert.Contains(t, body, "trivia_http_request_duration_seconds")
}
