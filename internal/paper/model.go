package paper

import (
	"fmt"
	"strings"
)

// Paper 는 생성된 연구 논문 값 객체다.
type Paper struct {
	Title        string   `json:"title"`
	Abstract     string   `json:"abstract"`
	Keywords     []string `json:"keywords"`
	Introduction string   `json:"introduction"`
	Methodology  string   `json:"methodology"`
	Results      string   `json:"results"`
	Discussion   string   `json:"discussion"`
	Conclusion   string   `json:"conclusion"`
	References   []string `json:"references"`
	WordCount    int      `json:"word_count"`
}

// RequiredFields 는 완성된 논문에 반드시 있어야 하는 9개 필드명이다.
var RequiredFields = []string{
	"title", "abstract", "keywords", "introduction", "methodology",
	"results", "discussion", "conclusion", "references",
}

// Validate 는 필수 필드 누락을 검사한다. 누락 필드명을 에러 메시지에 나열한다.
func (p *Paper) Validate() error {
	if p == nil {
		return fmt.Errorf("paper is nil")
	}

	missing := make([]string, 0, len(RequiredFields))
	appendIf := func(name string, absent bool) {
		if absent {
			missing = append(missing, name)
		}
	}

	appendIf("title", strings.TrimSpace(p.Title) == "")
	appendIf("abstract", strings.TrimSpace(p.Abstract) == "")
	appendIf("keywords", len(p.Keywords) == 0)
	appendIf("introduction", strings.TrimSpace(p.Introduction) == "")
	appendIf("methodology", strings.TrimSpace(p.Methodology) == "")
	appendIf("results", strings.TrimSpace(p.Results) == "")
	appendIf("discussion", strings.TrimSpace(p.Discussion) == "")
	appendIf("conclusion", strings.TrimSpace(p.Conclusion) == "")
	appendIf("references", len(p.References) == 0)

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
