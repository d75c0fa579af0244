package paper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// ErrUnparsableResponse 는 복구 후에도 모델 응답을 파싱하지 못했을 때 반환된다.
var ErrUnparsableResponse = errors.New("could not parse AI response")

var (
	jsonFencePattern    = regexp.MustCompile("(?i)```json\\s*")
	bareFencePattern    = regexp.MustCompile("```\\s*")
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
	smartQuoteReplacer  = strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")
)

// repairStep 은 모델 출력 복구 파이프라인의 한 단계다.
// 각 단계는 순수 문자열 변환이며 순서대로 적용된다.
type repairStep struct {
	name  string
	apply func(string) string
}

var repairSteps = []repairStep{
	{name: "strip_code_fences", apply: stripCodeFences},
	{name: "extract_json_object", apply: extractJSONObject},
	{name: "strip_trailing_commas", apply: stripTrailingCommas},
}

// Repair 는 복구 파이프라인 전체를 적용한 문자열을 반환한다.
func Repair(raw string) string {
	text := raw
	for _, step := range repairSteps {
		text = step.apply(text)
	}
	return strings.TrimSpace(text)
}

// ParsePaper 는 모델 응답에서 Paper JSON 을 복구·파싱한다.
// 1차 파싱 실패 시 스마트 따옴표를 정규화해 한 번 더 시도한다. 재시도는 그 한 번뿐이다.
func ParsePaper(raw string) (*Paper, error) {
	text := Repair(raw)

	var result Paper
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		relaxed := normalizeSmartQuotes(text)
		if retryErr := json.Unmarshal([]byte(relaxed), &result); retryErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, retryErr)
		}
	}
	return &result, nil
}

// stripCodeFences 는 마크다운 코드 펜스를 제거한다.
func stripCodeFences(text string) string {
	text = jsonFencePattern.ReplaceAllString(text, "")
	return bareFencePattern.ReplaceAllString(text, "")
}

// extractJSONObject 는 가장 바깥 {...} 구간만 남긴다. 중괄호가 없으면 그대로 반환한다.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return text
	}
	return text[start : end+1]
}

// stripTrailingCommas 는 닫는 괄호 앞의 잉여 콤마를 제거한다.
func stripTrailingCommas(text string) string {
	text = trailingCommaObject.ReplaceAllString(text, "}")
	return trailingCommaArray.ReplaceAllString(text, "]")
}

func normalizeSmartQuotes(text string) string {
	return smartQuoteReplacer.Replace(text)
}
