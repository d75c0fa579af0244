package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/park285/paperforge-go/internal/llm"
)

// Store 는 서비스 지표를 수집한다.
// 프로메테우스 레지스트리와 함께 /health/models 스냅샷용 누적 카운터를 유지한다.
type Store struct {
	registry *prometheus.Registry

	llmRequests *prometheus.CounterVec
	llmDuration *prometheus.HistogramVec
	llmTokens   *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	papersGenerated   prometheus.Counter
	originalityChecks prometheus.Counter
	originalityScore  prometheus.Histogram
	exportRequests    *prometheus.CounterVec

	totalCalls        int64
	totalErrors       int64
	totalInputTokens  int64
	totalOutputTokens int64
	totalDurationMs   int64
}

// NewStore 는 지표 저장소를 생성하고 컬렉터를 등록한다.
func NewStore() *Store {
	registry := prometheus.NewRegistry()
	s := &Store{
		registry: registry,
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paperforge_llm_requests_total",
			Help: "Gemini 호출 수 (모델/결과별)",
		}, []string{"model", "outcome"}),
		llmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paperforge_llm_request_duration_seconds",
			Help:    "Gemini 호출 소요 시간",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 90, 120},
		}, []string{"model"}),
		llmTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paperforge_llm_tokens_total",
			Help: "Gemini 토큰 사용량 (방향별)",
		}, []string{"direction"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paperforge_http_requests_total",
			Help: "HTTP 요청 수 (메서드/경로/상태별)",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paperforge_http_request_duration_seconds",
			Help:    "HTTP 요청 처리 시간",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		papersGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paperforge_papers_generated_total",
			Help: "생성에 성공한 논문 수",
		}),
		originalityChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paperforge_originality_checks_total",
			Help: "독창성 분석 수행 수",
		}),
		originalityScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "paperforge_originality_score",
			Help:    "독창성 점수 분포",
			Buckets: []float64{50, 60, 70, 75, 80, 85, 90, 95, 98},
		}),
		exportRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paperforge_export_requests_total",
			Help: "내보내기 요청 수 (형식별)",
		}, []string{"format"}),
	}

	registry.MustRegister(
		s.llmRequests, s.llmDuration, s.llmTokens,
		s.httpRequests, s.httpDuration,
		s.papersGenerated, s.originalityChecks, s.originalityScore,
		s.exportRequests,
	)
	return s
}

// Handler 는 /metrics 용 핸들러를 반환한다.
func (s *Store) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// RecordLLMSuccess 는 성공한 Gemini 호출을 기록한다.
func (s *Store) RecordLLMSuccess(model string, duration time.Duration, usage llm.Usage) {
	s.llmRequests.WithLabelValues(model, "success").Inc()
	s.llmDuration.WithLabelValues(model).Observe(duration.Seconds())
	s.llmTokens.WithLabelValues("input").Add(float64(usage.InputTokens))
	s.llmTokens.WithLabelValues("output").Add(float64(usage.OutputTokens))

	atomic.AddInt64(&s.totalCalls, 1)
	atomic.AddInt64(&s.totalInputTokens, int64(usage.InputTokens))
	atomic.AddInt64(&s.totalOutputTokens, int64(usage.OutputTokens))
	atomic.AddInt64(&s.totalDurationMs, duration.Milliseconds())
}

// RecordLLMError 는 실패한 Gemini 호출을 기록한다.
func (s *Store) RecordLLMError(model string, duration time.Duration) {
	if model == "" {
		model = "unknown"
	}
	s.llmRequests.WithLabelValues(model, "error").Inc()
	s.llmDuration.WithLabelValues(model).Observe(duration.Seconds())

	atomic.AddInt64(&s.totalCalls, 1)
	atomic.AddInt64(&s.totalErrors, 1)
	atomic.AddInt64(&s.totalDurationMs, duration.Milliseconds())
}

// RecordHTTP 는 완료된 HTTP 요청을 기록한다.
func (s *Store) RecordHTTP(method, path, status string, duration time.Duration) {
	s.httpRequests.WithLabelValues(method, path, status).Inc()
	s.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPaperGenerated 는 논문 생성 성공을 기록한다.
func (s *Store) RecordPaperGenerated() {
	s.papersGenerated.Inc()
}

// RecordOriginalityCheck 는 독창성 분석 수행과 점수를 기록한다.
func (s *Store) RecordOriginalityCheck(score int) {
	s.originalityChecks.Inc()
	s.originalityScore.Observe(float64(score))
}

// RecordExport 는 내보내기 요청을 형식별로 기록한다.
func (s *Store) RecordExport(format string) {
	s.exportRequests.WithLabelValues(format).Inc()
}

// UsageTotals 는 누적 토큰 사용량을 반환한다.
func (s *Store) UsageTotals() llm.Usage {
	input := atomic.LoadInt64(&s.totalInputTokens)
	output := atomic.LoadInt64(&s.totalOutputTokens)
	return llm.Usage{
		InputTokens:  int(input),
		OutputTokens: int(output),
		TotalTokens:  int(input + output),
	}
}

// Snapshot 는 LLM 호출 통계 스냅샷을 반환한다.
func (s *Store) Snapshot() map[string]float64 {
	totalCalls := atomic.LoadInt64(&s.totalCalls)
	totalErrors := atomic.LoadInt64(&s.totalErrors)
	input := atomic.LoadInt64(&s.totalInputTokens)
	output := atomic.LoadInt64(&s.totalOutputTokens)
	durationMs := atomic.LoadInt64(&s.totalDurationMs)

	avgDuration := 0.0
	if totalCalls > 0 {
		avgDuration = float64(durationMs) / float64(totalCalls)
	}

	return map[string]float64{
		"total_calls":         float64(totalCalls),
		"total_errors":        float64(totalErrors),
		"total_input_tokens":  float64(input),
		"total_output_tokens": float64(output),
		"total_tokens":        float64(input + output),
		"total_duration_ms":   float64(durationMs),
		"avg_duration_ms":     avgDuration,
	}
}
