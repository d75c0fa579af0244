package research

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/park285/paperforge-go/internal/config"
	"github.com/park285/paperforge-go/internal/gemini"
	"github.com/park285/paperforge-go/internal/httperror"
	"github.com/park285/paperforge-go/internal/metrics"
	"github.com/park285/paperforge-go/internal/originality"
	"github.com/park285/paperforge-go/internal/paper"
	"github.com/park285/paperforge-go/internal/store"
)

// Service: 논문 생성·독창성 분석·보관 비즈니스 로직 구현체입니다.
type Service struct {
	cfg      *config.Config
	client   gemini.Generator
	analyzer *originality.Analyzer
	papers   store.Papers
	prompts  *paper.Prompts
	metrics  *metrics.Store
	logger   *slog.Logger
}

// New: research Service 인스턴스를 생성합니다.
func New(
	cfg *config.Config,
	client gemini.Generator,
	analyzer *originality.Analyzer,
	papers store.Papers,
	prompts *paper.Prompts,
	metricsStore *metrics.Store,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		client:   client,
		analyzer: analyzer,
		papers:   papers,
		prompts:  prompts,
		metrics:  metricsStore,
		logger:   logger,
	}
}

type GenerateRequest struct {
	Topic     string
	Style     string
	WordCount int
	UserID    string
}

type GenerateResult struct {
	Paper   *paper.Paper
	Style   paper.Style
	Topic   string
	SavedID string
	Model   string
}

// GeneratePaper 는 주제로 논문을 생성한다.
// 인증된 요청이면 결과를 사용자 보관함에 저장을 시도하되, 저장 실패가
// 생성 응답을 막지는 않는다.
func (s *Service) GeneratePaper(ctx context.Context, requestID string, req GenerateRequest) (GenerateResult, error) {
	if s == nil || s.client == nil || s.prompts == nil {
		return GenerateResult{}, httperror.NewInternalError("service not configured")
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return GenerateResult{}, httperror.NewMissingField("topic")
	}

	style, err := paper.ParseStyle(req.Style)
	if err != nil {
		return GenerateResult{}, err
	}

	wordCount, err := s.resolveWordCount(req.WordCount)
	if err != nil {
		return GenerateResult{}, err
	}

	promptText, err := s.prompts.Generate(style, topic, wordCount)
	if err != nil {
		s.logError("paper_prompt_failed", err)
		return GenerateResult{}, httperror.NewInternalError("format generation prompt failed")
	}

	timeout := time.Duration(s.cfg.Gemini.TimeoutSeconds) * time.Second
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := s.client.Generate(callCtx, gemini.Request{Prompt: promptText})
	if err != nil {
		s.logError("paper_generate_failed", err)
		return GenerateResult{}, fmt.Errorf("generate paper: %w", err)
	}

	content, err := paper.ParsePaper(result.Text)
	if err != nil {
		s.logError("paper_parse_failed", err)
		return GenerateResult{}, err
	}
	if err := content.Validate(); err != nil {
		s.logError("paper_validate_failed", err)
		return GenerateResult{}, httperror.NewLLMParsingError(err.Error())
	}
	content.WordCount = wordCount

	if s.metrics != nil {
		s.metrics.RecordPaperGenerated()
	}

	generated := GenerateResult{
		Paper: content,
		Style: style,
		Topic: topic,
		Model: result.Model,
	}
	generated.SavedID = s.savePaper(ctx, requestID, req.UserID, topic, style, content)

	s.logInfo(
		"paper_generated",
		"request_id", requestID,
		"topic", topic,
		"style", string(style),
		"word_count", wordCount,
		"model", result.Model,
		"saved", generated.SavedID != "",
	)
	return generated, nil
}

// CheckOriginality 는 제출된 텍스트의 독창성 리포트를 반환한다.
func (s *Service) CheckOriginality(_ context.Context, requestID string, text string) (originality.Report, error) {
	if s == nil || s.analyzer == nil {
		return originality.Report{}, httperror.NewInternalError("service not configured")
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return originality.Report{}, httperror.NewMissingField("text")
	}
	minLength := s.cfg.Originality.MinTextLength
	if len(trimmed) < minLength {
		return originality.Report{}, httperror.NewInvalidInput(
			fmt.Sprintf("Text must be at least %d characters for analysis", minLength),
		)
	}

	report := s.analyzer.Analyze(trimmed)
	if s.metrics != nil {
		s.metrics.RecordOriginalityCheck(report.Score)
	}

	s.logInfo(
		"originality_checked",
		"request_id", requestID,
		"score", report.Score,
		"status", report.Status,
		"analyzed_words", report.AnalyzedWords,
	)
	return report, nil
}

// ListPapers 는 사용자의 논문 목록을 조회한다.
func (s *Service) ListPapers(ctx context.Context, userID string, query store.ListQuery) ([]store.Summary, int64, error) {
	if s == nil || s.papers == nil {
		return nil, 0, httperror.NewInternalError("paper store not configured")
	}
	return s.papers.List(ctx, userID, query)
}

// GetPaper 는 사용자의 논문 한 건을 조회한다.
func (s *Service) GetPaper(ctx context.Context, userID string, id string) (*store.PaperRecord, error) {
	if s == nil || s.papers == nil {
		return nil, httperror.NewInternalError("paper store not configured")
	}
	return s.papers.Get(ctx, userID, id)
}

// SavePaper 는 완성된 논문을 사용자 보관함에 직접 저장한다.
func (s *Service) SavePaper(
	ctx context.Context,
	userID string,
	topic string,
	style string,
	content *paper.Paper,
) (*store.PaperRecord, error) {
	if s == nil || s.papers == nil {
		return nil, httperror.NewInternalError("paper store not configured")
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, httperror.NewMissingField("topic")
	}

	parsedStyle, err := paper.ParseStyle(style)
	if err != nil {
		return nil, err
	}

	if content == nil {
		return nil, httperror.NewMissingField("paper")
	}
	if err := content.Validate(); err != nil {
		return nil, httperror.NewInvalidInput(err.Error())
	}
	if content.WordCount <= 0 {
		return nil, httperror.NewMissingField("word_count")
	}

	record, err := s.papers.Create(ctx, userID, topic, parsedStyle, content)
	if err != nil {
		s.logError("paper_save_failed", err)
		return nil, err
	}

	s.logInfo("paper_saved", "user_id", userID, "paper_id", record.ID)
	return record, nil
}

// DeletePaper 는 사용자의 논문 한 건을 삭제한다.
func (s *Service) DeletePaper(ctx context.Context, userID string, id string) error {
	if s == nil || s.papers == nil {
		return httperror.NewInternalError("paper store not configured")
	}
	return s.papers.Delete(ctx, userID, id)
}

func (s *Service) resolveWordCount(requested int) (int, error) {
	if requested == 0 {
		return s.cfg.Paper.DefaultWordCount, nil
	}
	if requested < s.cfg.Paper.MinWordCount || requested > s.cfg.Paper.MaxWordCount {
		return 0, httperror.NewInvalidInput(fmt.Sprintf(
			"word_count must be between %d and %d",
			s.cfg.Paper.MinWordCount, s.cfg.Paper.MaxWordCount,
		))
	}
	return requested, nil
}

func (s *Service) savePaper(
	ctx context.Context,
	requestID string,
	userID string,
	topic string,
	style paper.Style,
	content *paper.Paper,
) string {
	if s.papers == nil || strings.TrimSpace(userID) == "" {
		return ""
	}

	record, err := s.papers.Create(context.WithoutCancel(ctx), userID, topic, style, content)
	if err != nil {
		s.logger.Warn(
			"paper_save_failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err.Error(),
		)
		return ""
	}
	return record.ID
}

func (s *Service) logError(event string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error(event, "error", err.Error())
}

func (s *Service) logInfo(event string, fields ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Info(event, fields...)
}
