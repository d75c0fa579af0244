package paper

import (
	"embed"
	"fmt"
	"strconv"

	"github.com/park285/paperforge-go/internal/prompt"
)

//go:embed prompts/*.yml
var promptsFS embed.FS

// Prompts 는 논문 생성 프롬프트 모음이다.
// generate.yml 의 본문 템플릿에 인용 형식별 YAML 의 필드를 채워 완성한다.
type Prompts struct {
	prompts map[string]map[string]string
}

// NewPrompts 는 논문 프롬프트를 로드한다.
func NewPrompts() (*Prompts, error) {
	loaded, err := prompt.LoadYAMLDir(promptsFS, "prompts")
	if err != nil {
		return nil, fmt.Errorf("load paper prompts: %w", err)
	}
	bundle := &Prompts{prompts: loaded}

	// 지원하는 모든 인용 형식의 프롬프트가 실제로 임베드되었는지 기동 시점에 확인한다.
	for _, style := range Styles() {
		if _, err := prompt.Get(loaded, string(style), "paper"); err != nil {
			return nil, fmt.Errorf("missing style prompt: %w", err)
		}
	}
	return bundle, nil
}

// Generate 는 주제·분량·인용 형식을 채운 생성 프롬프트를 반환한다.
func (p *Prompts) Generate(style Style, topic string, wordCount int) (string, error) {
	base, err := prompt.Get(p.prompts, "generate", "paper")
	if err != nil {
		return "", err
	}
	template, err := prompt.Field(base, "user", "generate.user")
	if err != nil {
		return "", err
	}

	styleData, err := prompt.Get(p.prompts, string(style), "paper")
	if err != nil {
		return "", err
	}

	values := map[string]string{
		"topic":      topic,
		"word_count": strconv.Itoa(wordCount),
	}
	for key, value := range styleData {
		values[key] = value
	}

	formatted, err := prompt.FormatTemplate(template, values)
	if err != nil {
		return "", fmt.Errorf("format generate prompt: %w", err)
	}
	return formatted, nil
}
