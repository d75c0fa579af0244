package originality

// 위험도 상태 값.
const (
	StatusLowRisk    = "low-risk"
	StatusMediumRisk = "medium-risk"
	StatusHighRisk   = "high-risk"
)

// 점수 클램프 범위.
const (
	ScoreMin = 50
	ScoreMax = 98
)

const (
	maxMatches     = 3
	maxSuggestions = 4
)

// Match 는 의심 구절과 합성 유사도(70~89%)다.
type Match struct {
	Text       string `json:"text"`
	Similarity int    `json:"similarity"`
}

// Report 는 독창성 분석 결과 값 객체다.
// 호출마다 새로 생성되며 저장되지 않는다.
type Report struct {
	Score         int      `json:"score"`
	Status        string   `json:"status"`
	Matches       []Match  `json:"matches"`
	Suggestions   []string `json:"suggestions"`
	AnalyzedWords int      `json:"analyzed_words"`
}

func statusForScore(score int) string {
	switch {
	case score >= 85:
		return StatusLowRisk
	case score >= 70:
		return StatusMediumRisk
	default:
		return StatusHighRisk
	}
}
