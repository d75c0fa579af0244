package llm

// Usage: 토큰 사용량 정보를 담습니다.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Result: LLM 응답 본문과 사용량을 담습니다.
type Result struct {
	Text  string
	Model string
	Usage Usage
}
