package handler

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/park285/paperforge-go/internal/config"
	"github.com/park285/paperforge-go/internal/metrics"
	"github.com/park285/paperforge-go/internal/middleware"
	"github.com/park285/paperforge-go/internal/store"
)

// NewRouter 는 HTTP 라우터를 구성한다.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	metricsStore *metrics.Store,
	papers store.Papers,
	researchHandler *ResearchHandler,
	papersHandler *PapersHandler,
) *gin.Engine {
	setGinMode(cfg.Logging.Level)

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg)),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.UserIdentity(cfg),
		middleware.RateLimit(cfg),
		middleware.HTTPMetrics(metricsStore),
	)

	RegisterHealthRoutes(router, cfg, metricsStore, papers)
	researchHandler.RegisterRoutes(router)
	papersHandler.RegisterRoutes(router)

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}

	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	corsCfg.AllowOrigins = origins
	return corsCfg
}

func setGinMode(level string) {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
