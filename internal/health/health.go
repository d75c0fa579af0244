package health

import (
	"context"
	"time"

	"github.com/park285/paperforge-go/internal/config"
)

var startTime = time.Now()

// Pinger 는 데이터베이스 연결 점검 대상이다.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Component 는 상태 구성 요소다.
type Component struct {
	Status string         `json:"status"`
	Detail map[string]any `json:"detail"`
}

// Response 는 상태 응답 본문이다.
type Response struct {
	Status     string               `json:"status"`
	Components map[string]Component `json:"components"`
}

// Collect 는 헬스 상태를 수집한다.
// deepChecks 가 켜지면 DB 연결까지 확인한다. liveness 는 shallow 로 유지해
// 외부 의존성 장애가 프로세스 재시작으로 이어지지 않게 한다.
func Collect(ctx context.Context, cfg *config.Config, papers Pinger, deepChecks bool) Response {
	components := make(map[string]Component)

	components["app"] = buildAppStatus()
	components["gemini"] = buildGeminiStatus(cfg)
	components["database"] = buildDatabaseStatus(ctx, cfg, papers, deepChecks)

	overall := "ok"
	for _, component := range components {
		if component.Status != "ok" {
			overall = "degraded"
			break
		}
	}

	return Response{
		Status:     overall,
		Components: components,
	}
}

func buildAppStatus() Component {
	uptimeSeconds := int(time.Since(startTime).Seconds())
	return Component{
		Status: "ok",
		Detail: map[string]any{
			"uptime_seconds": uptimeSeconds,
		},
	}
}

func buildGeminiStatus(cfg *config.Config) Component {
	apiKeyPresent := false
	model := ""
	timeoutSeconds := 0

	if cfg != nil {
		apiKeyPresent = cfg.Gemini.PrimaryKey() != ""
		model = cfg.Gemini.Model
		timeoutSeconds = cfg.Gemini.TimeoutSeconds
	}
	status := "ok"
	if !apiKeyPresent {
		status = "degraded"
	}

	return Component{
		Status: status,
		Detail: map[string]any{
			"api_key_present": apiKeyPresent,
			"model":           model,
			"timeout_seconds": timeoutSeconds,
		},
	}
}

func buildDatabaseStatus(ctx context.Context, cfg *config.Config, papers Pinger, deepChecks bool) Component {
	host := ""
	name := ""
	if cfg != nil {
		host = cfg.Database.Host
		name = cfg.Database.Name
	}

	detail := map[string]any{
		"host": host,
		"name": name,
	}

	if !deepChecks || papers == nil {
		detail["checked"] = false
		return Component{Status: "ok", Detail: detail}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	detail["checked"] = true
	if err := papers.Ping(checkCtx); err != nil {
		detail["error"] = err.Error()
		return Component{Status: "degraded", Detail: detail}
	}
	return Component{Status: "ok", Detail: detail}
}
