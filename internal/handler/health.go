package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/park285/paperforge-go/internal/config"
	"github.com/park285/paperforge-go/internal/health"
	"github.com/park285/paperforge-go/internal/metrics"
	"github.com/park285/paperforge-go/internal/store"
)

// ModelConfigResponse: 모델 설정과 누적 사용량 응답입니다.
type ModelConfigResponse struct {
	Model           string             `json:"model"`
	Temperature     float64            `json:"temperature"`
	MaxOutputTokens int                `json:"max_output_tokens"`
	TimeoutSeconds  int                `json:"timeout_seconds"`
	HTTP2Enabled    bool               `json:"http2_enabled"`
	TransportMode   string             `json:"transport_mode"`
	UsageTotals     map[string]float64 `json:"usage_totals"`
}

// RegisterHealthRoutes: 상태 확인 라우트를 등록합니다.
func RegisterHealthRoutes(
	router *gin.Engine,
	cfg *config.Config,
	metricsStore *metrics.Store,
	papers store.Papers,
) {
	router.GET("/health", func(c *gin.Context) {
		// Liveness: 외부 의존성(DB 등) 상태로 인해 다운 판정되지 않도록 shallow로 유지합니다.
		payload := health.Collect(c.Request.Context(), cfg, papers, false)
		c.JSON(http.StatusOK, payload)
	})

	router.GET("/health/ready", func(c *gin.Context) {
		payload := health.Collect(c.Request.Context(), cfg, papers, true)
		status := http.StatusOK
		if payload.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, payload)
	})

	// Prometheus 메트릭 (장기 히스토리 분석용)
	router.GET("/metrics", gin.WrapH(metricsStore.Handler()))

	router.GET("/health/models", func(c *gin.Context) {
		transportMode := "h1"
		if cfg.HTTP.HTTP2Enabled {
			transportMode = "h2c"
		}

		response := ModelConfigResponse{
			Model:           cfg.Gemini.Model,
			Temperature:     cfg.Gemini.Temperature,
			MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
			TimeoutSeconds:  cfg.Gemini.TimeoutSeconds,
			HTTP2Enabled:    cfg.HTTP.HTTP2Enabled,
			TransportMode:   transportMode,
			UsageTotals:     metricsStore.Snapshot(),
		}

		c.JSON(http.StatusOK, response)
	})
}
