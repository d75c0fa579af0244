package di

import (
	"fmt"

	"github.com/park285/paperforge-go/internal/config"
	"github.com/park285/paperforge-go/internal/gemini"
	"github.com/park285/paperforge-go/internal/handler"
	"github.com/park285/paperforge-go/internal/metrics"
	"github.com/park285/paperforge-go/internal/originality"
	"github.com/park285/paperforge-go/internal/paper"
	"github.com/park285/paperforge-go/internal/server"
	"github.com/park285/paperforge-go/internal/store"
	"github.com/park285/paperforge-go/internal/usecase/research"
)

// InitializeApp 은 애플리케이션 의존성을 초기화하고 App 인스턴스를 반환한다.
func InitializeApp() (*App, error) {
	cfg, err := config.ProvideConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	metricsStore := metrics.NewStore()

	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	papersRepository := store.NewRepository(cfg, logger)

	geminiClient, err := gemini.NewClient(cfg, metricsStore)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	prompts, err := paper.NewPrompts()
	if err != nil {
		return nil, fmt.Errorf("paper prompts: %w", err)
	}

	analyzer := originality.NewAnalyzer(nil)
	researchService := research.New(cfg, geminiClient, analyzer, papersRepository, prompts, metricsStore, logger)

	researchHandler := handler.NewResearchHandler(researchService)
	papersHandler := handler.NewPapersHandler(researchService, metricsStore)

	router := handler.NewRouter(cfg, logger, metricsStore, papersRepository, researchHandler, papersHandler)
	httpServer := server.NewHTTPServer(cfg, router)

	return NewApp(httpServer, logger, cfg, papersRepository), nil
}
