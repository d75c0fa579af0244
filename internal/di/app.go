package di

import (
	"log/slog"
	"net/http"

	"github.com/park285/paperforge-go/internal/config"
	"github.com/park285/paperforge-go/internal/store"
)

// App: 애플리케이션 구성 요소를 묶는다.
type App struct {
	Server *http.Server
	Logger *slog.Logger
	Config *config.Config
	Papers *store.Repository
}

// NewApp: App 인스턴스를 생성합니다.
func NewApp(
	server *http.Server,
	logger *slog.Logger,
	cfg *config.Config,
	papers *store.Repository,
) *App {
	return &App{
		Server: server,
		Logger: logger,
		Config: cfg,
		Papers: papers,
	}
}

// Close: 앱 리소스를 정리합니다.
func (a *App) Close() {
	if a.Papers != nil {
		a.Papers.Close()
	}
}
