package gemini

import (
	"context"

	"github.com/park285/paperforge-go/internal/llm"
)

// Generator 는 텍스트 생성 클라이언트 추상화다. 테스트에서 스텁으로 대체한다.
type Generator interface {
	Generate(ctx context.Context, req Request) (llm.Result, error)
}

var _ Generator = (*Client)(nil)
