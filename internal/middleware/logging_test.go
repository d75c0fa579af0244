package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/park285/paperforge-go/internal/metrics"
)

func TestRequestLoggerLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger))
	router.GET("/api/fail", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/fail", nil))

	output := buf.String()
	if !strings.Contains(output, "http_request") || !strings.Contains(output, "/api/fail") {
		t.Errorf("missing request log: %s", output)
	}
	if !strings.Contains(output, "level=ERROR") {
		t.Errorf("5xx should log at error level: %s", output)
	}
}

func TestRequestLoggerSkipsHealthyNoise(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if buf.Len() != 0 {
		t.Errorf("healthy /health should not be logged: %s", buf.String())
	}
}

func TestRequestLoggerNilLogger(t *testing.T) {
	router := newTestRouter(RequestID(), RequestLogger(nil))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/test", nil))
	if recorder.Code != http.StatusOK {
		t.Errorf("status = %d", recorder.Code)
	}
}

func TestHTTPMetricsRecordsRoutePattern(t *testing.T) {
	store := metrics.NewStore()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(HTTPMetrics(store))
	router.GET("/api/papers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/papers/abc", nil))

	metricsRecorder := httptest.NewRecorder()
	store.Handler().ServeHTTP(metricsRecorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := metricsRecorder.Body.String()
	if !strings.Contains(body, `path="/api/papers/:id"`) {
		t.Errorf("metrics should use route pattern labels: %s", body)
	}
}
