package originality

import "regexp"

// genericPatterns: 상투적 학술 표현 목록.
// 목록과 가중치는 점수 호환성을 위해 고정이다. 항목을 바꾸면 공개된 점수 분포가 달라진다.
var genericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)this paper presents`),
	regexp.MustCompile(`(?i)in recent years`),
	regexp.MustCompile(`(?i)in this study`),
	regexp.MustCompile(`(?i)the results show`),
	regexp.MustCompile(`(?i)it is important to note`),
	regexp.MustCompile(`(?i)furthermore`),
	regexp.MustCompile(`(?i)moreover`),
	regexp.MustCompile(`(?i)in conclusion`),
	regexp.MustCompile(`(?i)this study aims to`),
	regexp.MustCompile(`(?i)the purpose of this`),
	regexp.MustCompile(`(?i)as mentioned earlier`),
	regexp.MustCompile(`(?i)based on the findings`),
	regexp.MustCompile(`(?i)the data suggests`),
	regexp.MustCompile(`(?i)according to`),
}

// aiPatterns: 생성형 텍스트에서 과용되는 단어 그룹.
var aiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(utilize|leverage|facilitate|implement)\b`),
	regexp.MustCompile(`(?i)\b(cutting-edge|state-of-the-art|groundbreaking|innovative)\b`),
	regexp.MustCompile(`(?i)\b(significant|substantial|considerable|notable)\b`),
}

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)
