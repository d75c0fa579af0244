package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/park285/paperforge-go/internal/config"
	"github.com/park285/paperforge-go/internal/llm"
	"github.com/park285/paperforge-go/internal/metrics"
)

var (
	// ErrMissingAPIKey 는 Gemini API 키가 없을 때 반환된다.
	ErrMissingAPIKey = errors.New("missing gemini api key")
	// ErrEmptyResponse 는 모델이 빈 응답을 돌려줬을 때 반환된다.
	ErrEmptyResponse = errors.New("empty model response")
)

// Request 는 Gemini 요청 데이터다.
type Request struct {
	Prompt       string
	SystemPrompt string
	Model        string
}

// Client 는 Gemini 호출을 담당한다.
// API 키를 라운드로빈으로 순환하며 키별 클라이언트를 지연 생성해 재사용한다.
type Client struct {
	cfg       *config.Config
	metrics   *metrics.Store
	mu        sync.Mutex
	clients   map[string]*genai.Client
	apiKeys   []string
	apiKeyIdx int
}

// NewClient 는 Gemini 클라이언트를 생성한다.
func NewClient(cfg *config.Config, metricsStore *metrics.Store) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if metricsStore == nil {
		return nil, errors.New("metrics store is nil")
	}
	return &Client{
		cfg:     cfg,
		metrics: metricsStore,
		clients: make(map[string]*genai.Client),
		apiKeys: cfg.Gemini.APIKeys,
	}, nil
}

// Generate 는 텍스트 생성 요청을 수행한다.
func (c *Client) Generate(ctx context.Context, req Request) (llm.Result, error) {
	start := time.Now()
	model := c.resolveModel(req.Model)

	response, err := c.generate(ctx, model, req)
	if err != nil {
		c.metrics.RecordLLMError(model, time.Since(start))
		return llm.Result{Model: model}, err
	}

	text := response.Text()
	if strings.TrimSpace(text) == "" {
		c.metrics.RecordLLMError(model, time.Since(start))
		return llm.Result{Model: model}, ErrEmptyResponse
	}

	usage := extractUsage(response)
	c.metrics.RecordLLMSuccess(model, time.Since(start), usage)
	return llm.Result{Text: text, Model: model, Usage: usage}, nil
}

func (c *Client) generate(ctx context.Context, model string, req Request) (*genai.GenerateContentResponse, error) {
	client, err := c.selectClient(ctx)
	if err != nil {
		return nil, err
	}

	generateConfig := c.buildGenerateConfig(req.SystemPrompt)
	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	response, err := client.Models.GenerateContent(ctx, model, contents, generateConfig)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	return response, nil
}

func (c *Client) selectClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.apiKeys) == 0 {
		return nil, ErrMissingAPIKey
	}

	key := c.apiKeys[c.apiKeyIdx%len(c.apiKeys)]
	c.apiKeyIdx++
	if client, ok := c.clients[key]; ok {
		return client, nil
	}

	timeout := time.Duration(c.cfg.Gemini.TimeoutSeconds) * time.Second
	client, err := genai.NewClient(context.WithoutCancel(ctx), &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			Timeout: genai.Ptr(timeout),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c.clients[key] = client
	return client, nil
}

func (c *Client) resolveModel(override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return c.cfg.Gemini.Model
}

func (c *Client) buildGenerateConfig(systemPrompt string) *genai.GenerateContentConfig {
	generateConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.cfg.Gemini.Temperature)),
		MaxOutputTokens: int32(c.cfg.Gemini.MaxOutputTokens),
	}
	if systemPrompt != "" {
		generateConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	return generateConfig
}

func extractUsage(response *genai.GenerateContentResponse) llm.Usage {
	if response == nil || response.UsageMetadata == nil {
		return llm.Usage{}
	}
	usage := response.UsageMetadata
	return llm.Usage{
		InputTokens:  int(usage.PromptTokenCount),
		OutputTokens: int(usage.CandidatesTokenCount),
		TotalTokens:  int(usage.TotalTokenCount),
	}
}
