package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/park285/paperforge-go/internal/config"
	"github.com/park285/paperforge-go/internal/gemini"
	"github.com/park285/paperforge-go/internal/httperror"
	"github.com/park285/paperforge-go/internal/llm"
	"github.com/park285/paperforge-go/internal/metrics"
	"github.com/park285/paperforge-go/internal/originality"
	"github.com/park285/paperforge-go/internal/paper"
	"github.com/park285/paperforge-go/internal/store"
)

const stubPaperJSON = `{
	"title": "Adaptive Caching Strategies",
	"abstract": "We study adaptive caching.",
	"keywords": ["caching", "systems"],
	"introduction": "Intro.",
	"methodology": "Methods.",
	"results": "Results.",
	"discussion": "Discussion.",
	"conclusion": "Conclusion.",
	"references": ["[1] A. Author, 'Caching,' SOSP, 2021."]
}`

type stubGenerator struct {
	text string
	err  error
	last gemini.Request
}

func (g *stubGenerator) Generate(_ context.Context, req gemini.Request) (llm.Result, error) {
	g.last = req
	if g.err != nil {
		return llm.Result{}, g.err
	}
	return llm.Result{Text: g.text, Model: "stub-model"}, nil
}

type stubPapers struct {
	created   []store.PaperRecord
	createErr error
	getRecord *store.PaperRecord
}

func (s *stubPapers) Create(_ context.Context, userID, topic string, style paper.Style, content *paper.Paper) (*store.PaperRecord, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	record := store.PaperRecord{
		ID:            "saved-id",
		UserID:        userID,
		Topic:         topic,
		CitationStyle: string(style),
		Title:         content.Title,
	}
	s.created = append(s.created, record)
	return &record, nil
}

func (s *stubPapers) List(context.Context, string, store.ListQuery) ([]store.Summary, int64, error) {
	return nil, 0, nil
}

func (s *stubPapers) Get(_ context.Context, _ string, _ string) (*store.PaperRecord, error) {
	if s.getRecord == nil {
		return nil, store.ErrNotFound
	}
	return s.getRecord, nil
}

func (s *stubPapers) Delete(context.Context, string, string) error { return nil }
func (s *stubPapers) Ping(context.Context) error                   { return nil }
func (s *stubPapers) Close()                                       {}

func testConfig() *config.Config {
	return &config.Config{
		Gemini: config.GeminiConfig{
			Model:          "gemini-2.5-pro",
			TimeoutSeconds: 5,
		},
		Originality: config.OriginalityConfig{MinTextLength: 100},
		Paper: config.PaperConfig{
			MinWordCount:     500,
			MaxWordCount:     10000,
			DefaultWordCount: 1500,
		},
	}
}

func newTestService(t *testing.T, client gemini.Generator, papers store.Papers) *Service {
	t.Helper()
	prompts, err := paper.NewPrompts()
	if err != nil {
		t.Fatalf("NewPrompts: %v", err)
	}
	return New(testConfig(), client, originality.NewAnalyzer(nil), papers, prompts, metrics.NewStore(), nil)
}

func TestGeneratePaper(t *testing.T) {
	client := &stubGenerator{text: stubPaperJSON}
	papers := &stubPapers{}
	service := newTestService(t, client, papers)

	result, err := service.GeneratePaper(context.Background(), "req-1", GenerateRequest{
		Topic:  "adaptive caching",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("GeneratePaper: %v", err)
	}
	if result.Paper.Title != "Adaptive Caching Strategies" {
		t.Errorf("title = %q", result.Paper.Title)
	}
	if result.Style != paper.StyleIEEE {
		t.Errorf("style = %q", result.Style)
	}
	if result.Paper.WordCount != 1500 {
		t.Errorf("word_count = %d, want default 1500", result.Paper.WordCount)
	}
	if result.SavedID != "saved-id" {
		t.Errorf("saved id = %q", result.SavedID)
	}
	if len(papers.created) != 1 || papers.created[0].UserID != "user-1" {
		t.Errorf("created = %+v", papers.created)
	}
	if !strings.Contains(client.last.Prompt, "adaptive caching") {
		t.Error("prompt missing topic")
	}
}

func TestGeneratePaperAnonymousSkipsSave(t *testing.T) {
	papers := &stubPapers{}
	service := newTestService(t, &stubGenerator{text: stubPaperJSON}, papers)

	result, err := service.GeneratePaper(context.Background(), "req-1", GenerateRequest{Topic: "t"})
	if err != nil {
		t.Fatalf("GeneratePaper: %v", err)
	}
	if result.SavedID != "" {
		t.Errorf("saved id = %q, want empty", result.SavedID)
	}
	if len(papers.created) != 0 {
		t.Errorf("unexpected save: %+v", papers.created)
	}
}

func TestGeneratePaperSaveFailureDoesNotBlock(t *testing.T) {
	papers := &stubPapers{createErr: errors.New("db down")}
	service := newTestService(t, &stubGenerator{text: stubPaperJSON}, papers)

	result, err := service.GeneratePaper(context.Background(), "req-1", GenerateRequest{
		Topic:  "t",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("GeneratePaper should succeed despite save failure: %v", err)
	}
	if result.SavedID != "" {
		t.Errorf("saved id = %q, want empty", result.SavedID)
	}
}

func TestGeneratePaperValidation(t *testing.T) {
	service := newTestService(t, &stubGenerator{text: stubPaperJSON}, &stubPapers{})
	ctx := context.Background()

	if _, err := service.GeneratePaper(ctx, "r", GenerateRequest{Topic: "  "}); err == nil {
		t.Error("expected error for empty topic")
	}

	_, err := service.GeneratePaper(ctx, "r", GenerateRequest{Topic: "t", Style: "vancouver"})
	if !errors.Is(err, paper.ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}

	_, err = service.GeneratePaper(ctx, "r", GenerateRequest{Topic: "t", WordCount: 100})
	var apiErr *httperror.Error
	if !errors.As(err, &apiErr) || apiErr.Code != httperror.ErrorCodeInvalidInput {
		t.Errorf("expected invalid input for word count, got %v", err)
	}
}

func TestGeneratePaperUnparsableResponse(t *testing.T) {
	service := newTestService(t, &stubGenerator{text: "sorry, no"}, &stubPapers{})

	_, err := service.GeneratePaper(context.Background(), "r", GenerateRequest{Topic: "t"})
	if !errors.Is(err, paper.ErrUnparsableResponse) {
		t.Errorf("expected ErrUnparsableResponse, got %v", err)
	}
}

func TestGeneratePaperClientError(t *testing.T) {
	service := newTestService(t, &stubGenerator{err: context.DeadlineExceeded}, &stubPapers{})

	_, err := service.GeneratePaper(context.Background(), "r", GenerateRequest{Topic: "t"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got %v", err)
	}
}

func TestCheckOriginality(t *testing.T) {
	service := newTestService(t, &stubGenerator{}, &stubPapers{})
	text := strings.Repeat("Results indicate meaningful gains across different deployments over time. ", 4)

	report, err := service.CheckOriginality(context.Background(), "req-1", text)
	if err != nil {
		t.Fatalf("CheckOriginality: %v", err)
	}
	if report.Score < 50 || report.Score > 98 {
		t.Errorf("score out of range: %d", report.Score)
	}
}

func TestCheckOriginalityTooShort(t *testing.T) {
	service := newTestService(t, &stubGenerator{}, &stubPapers{})

	_, err := service.CheckOriginality(context.Background(), "req-1", "too short")
	var apiErr *httperror.Error
	if !errors.As(err, &apiErr) || apiErr.Code != httperror.ErrorCodeInvalidInput {
		t.Errorf("expected invalid input, got %v", err)
	}

	if _, err := service.CheckOriginality(context.Background(), "req-1", "   "); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestGetPaperNotFound(t *testing.T) {
	service := newTestService(t, &stubGenerator{}, &stubPapers{})

	_, err := service.GetPaper(context.Background(), "user", "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSavePaper(t *testing.T) {
	papers := &stubPapers{}
	service := newTestService(t, &stubGenerator{}, papers)

	content, err := paper.ParsePaper(stubPaperJSON)
	if err != nil {
		t.Fatalf("ParsePaper: %v", err)
	}
	content.WordCount = 1500

	record, err := service.SavePaper(context.Background(), "user-1", "adaptive caching", "apa", content)
	if err != nil {
		t.Fatalf("SavePaper: %v", err)
	}
	if record.ID != "saved-id" {
		t.Errorf("id = %q", record.ID)
	}
	if len(papers.created) != 1 {
		t.Fatalf("created = %d, want 1", len(papers.created))
	}
	if papers.created[0].CitationStyle != "apa" {
		t.Errorf("style = %q", papers.created[0].CitationStyle)
	}
}

func TestSavePaperValidation(t *testing.T) {
	service := newTestService(t, &stubGenerator{}, &stubPapers{})

	complete, err := paper.ParsePaper(stubPaperJSON)
	if err != nil {
		t.Fatalf("ParsePaper: %v", err)
	}
	complete.WordCount = 1500

	noCount, err := paper.ParsePaper(stubPaperJSON)
	if err != nil {
		t.Fatalf("ParsePaper: %v", err)
	}

	cases := []struct {
		name    string
		topic   string
		style   string
		content *paper.Paper
	}{
		{"missing topic", "   ", "ieee", complete},
		{"unknown style", "caching", "vancouver", complete},
		{"nil content", "caching", "ieee", nil},
		{"incomplete content", "caching", "ieee", &paper.Paper{Title: "only a title"}},
		{"missing word count", "caching", "ieee", noCount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.SavePaper(context.Background(), "user-1", tc.topic, tc.style, tc.content); err == nil {
				t.Error("expected error")
			}
		})
	}
}
