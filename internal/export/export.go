package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/park285/paperforge-go/internal/paper"
)

// Format 은 내보내기 형식 식별자다.
type Format string

const (
	// FormatDOCX 는 Word 문서 형식이다.
	FormatDOCX Format = "docx"
	// FormatPDF 는 인쇄용 HTML 형식이다. 브라우저에서 PDF로 인쇄한다.
	FormatPDF Format = "pdf"
)

// ErrUnknownFormat 은 지원하지 않는 내보내기 형식일 때 반환된다.
var ErrUnknownFormat = errors.New("unknown export format")

// File 은 내보내기 결과물이다.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ParseFormat 은 내보내기 형식 문자열을 검증한다.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, value)
	}
}

// Render 는 논문을 지정한 형식의 파일로 변환한다.
func Render(format Format, content *paper.Paper) (File, error) {
	if content == nil {
		return File{}, errors.New("paper content is nil")
	}

	switch format {
	case FormatDOCX:
		return renderDOCX(content)
	case FormatPDF:
		return renderHTML(content)
	default:
		return File{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// section 은 본문 장 하나다. 로마 숫자 제목과 단락 텍스트를 가진다.
type section struct {
	Heading string
	Body    string
}

func sections(content *paper.Paper) []section {
	return []section{
		{Heading: "I. Introduction", Body: content.Introduction},
		{Heading: "II. Methodology", Body: content.Methodology},
		{Heading: "III. Results", Body: content.Results},
		{Heading: "IV. Discussion", Body: content.Discussion},
		{Heading: "V. Conclusion", Body: content.Conclusion},
	}
}
