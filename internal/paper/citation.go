package paper

import (
	"errors"
	"fmt"
	"strings"
)

// Style 은 인용 형식 식별자다. 프롬프트 문구와 참고문헌 표기만 달라진다.
type Style string

const (
	StyleIEEE    Style = "ieee"
	StyleAPA     Style = "apa"
	StyleMLA     Style = "mla"
	StyleChicago Style = "chicago"
	StyleHarvard Style = "harvard"
)

// ErrUnknownStyle 은 지원하지 않는 인용 형식일 때 반환된다.
var ErrUnknownStyle = errors.New("unknown citation style")

// Styles 는 지원하는 인용 형식 전체다.
func Styles() []Style {
	return []Style{StyleIEEE, StyleAPA, StyleMLA, StyleChicago, StyleHarvard}
}

// ParseStyle 은 인용 형식 문자열을 검증한다. 빈 값은 IEEE 로 간주한다.
func ParseStyle(value string) (Style, error) {
	normalized := Style(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return StyleIEEE, nil
	}
	for _, style := range Styles() {
		if normalized == style {
			return style, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownStyle, value)
}
