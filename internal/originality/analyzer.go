package originality

import (
	"fmt"
	"math"
	"strings"

	"github.com/park285/paperforge-go/internal/randx"
)

// 패널티 상한.
const (
	repetitionPenaltyCap = 20.0
	genericPenaltyCap    = 25.0
	varietyPenaltyCap    = 15.0
	aiPenaltyCap         = 15.0
)

const (
	minSentenceLength  = 10
	excerptLimit       = 80
	excerptDedupPrefix = 50
	candidateLimit     = 5
)

// Analyzer 는 텍스트의 독창성을 휴리스틱으로 평가한다.
// 외부 호출이 없는 순수 계산이며, 점수 지터를 위한 난수원만 주입받는다.
// 동일 입력이라도 지터 때문에 점수가 매번 약간 달라진다. 이는 의도된 동작이다.
type Analyzer struct {
	rng *randx.LockedRand
}

// NewAnalyzer 는 분석기를 생성한다. rng 가 nil 이면 임의 시드를 사용한다.
func NewAnalyzer(rng *randx.LockedRand) *Analyzer {
	if rng == nil {
		rng = randx.New(nil)
	}
	return &Analyzer{rng: rng}
}

// Analyze 는 텍스트 전체를 평가해 Report 를 반환한다.
// 입력 최소 길이 검사는 호출자 책임이다. 이 함수는 어떤 문자열에도 실패하지 않는다.
func (a *Analyzer) Analyze(text string) Report {
	words := strings.Fields(strings.ToLower(text))
	sentences := splitSentences(text)

	repeatedPhrases := countRepeatedPhrases(sentences)
	repetitionPenalty := math.Min(repetitionPenaltyCap, float64(repeatedPhrases)*2)

	genericHits, matches := a.scanGenericPhrases(sentences)
	genericDensity := 0.0
	if len(sentences) > 0 {
		genericDensity = float64(genericHits) / float64(len(sentences))
	}
	genericPenalty := math.Min(genericPenaltyCap, genericDensity*40)

	// 문장 길이 분산이 클수록 패널티가 커진다. 점수 호환성을 위해 공식은 고정이다.
	varietyPenalty := math.Min(varietyPenaltyCap, sentenceLengthVariance(sentences)/5)

	aiHits := countAIPatterns(text)
	aiPenalty := math.Min(aiPenaltyCap, float64(aiHits)*1.5)

	score := 100.0
	score -= repetitionPenalty
	score -= genericPenalty
	score -= varietyPenalty
	score -= aiPenalty

	// 지터 [-5, +5]: 같은 텍스트가 항상 같은 점수로 고정되는 것을 피한다.
	score += float64(a.rng.IntN(11) - 5)

	final := int(math.Round(score))
	if final < ScoreMin {
		final = ScoreMin
	}
	if final > ScoreMax {
		final = ScoreMax
	}

	suggestions := buildSuggestions(repeatedPhrases, genericHits, varietyPenalty, aiHits, final)

	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	return Report{
		Score:         final,
		Status:        statusForScore(final),
		Matches:       matches,
		Suggestions:   suggestions,
		AnalyzedWords: len(words),
	}
}

// splitSentences 는 종결 부호 기준으로 문장을 나누고 10자 이하 조각은 버린다.
func splitSentences(text string) []string {
	parts := sentenceSplitter.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(strings.TrimSpace(part)) > minSentenceLength {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// countRepeatedPhrases 는 전체 문서에서 2회 이상 등장한 3-gram 구절 수를 센다.
func countRepeatedPhrases(sentences []string) int {
	phrases := make(map[string]int)
	for _, sentence := range sentences {
		sentenceWords := strings.Fields(strings.ToLower(strings.TrimSpace(sentence)))
		for i := 0; i+2 < len(sentenceWords); i++ {
			phrase := strings.Join(sentenceWords[i:i+3], " ")
			phrases[phrase]++
		}
	}

	repeated := 0
	for _, count := range phrases {
		if count > 1 {
			repeated++
		}
	}
	return repeated
}

// scanGenericPhrases 는 상투 표현 매칭 수를 세고 발췌 후보를 모은다.
// 후보는 50자 접두사로 중복 제거하며 최대 5개까지 수집한다.
func (a *Analyzer) scanGenericPhrases(sentences []string) (int, []Match) {
	hits := 0
	matches := make([]Match, 0, candidateLimit)

	for _, sentence := range sentences {
		for _, pattern := range genericPatterns {
			if !pattern.MatchString(sentence) {
				continue
			}
			hits++
			if len(matches) >= candidateLimit {
				continue
			}
			prefix := truncateRunes(sentence, excerptDedupPrefix)
			if containsExcerpt(matches, prefix) {
				continue
			}
			matches = append(matches, Match{
				Text:       excerpt(sentence),
				Similarity: 70 + a.rng.IntN(20),
			})
		}
	}
	return hits, matches
}

func containsExcerpt(matches []Match, prefix string) bool {
	for _, m := range matches {
		if strings.Contains(m.Text, prefix) {
			return true
		}
	}
	return false
}

func excerpt(sentence string) string {
	trimmed := strings.TrimSpace(sentence)
	if len([]rune(trimmed)) <= excerptLimit {
		return trimmed
	}
	return truncateRunes(trimmed, excerptLimit) + "..."
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

// sentenceLengthVariance 는 문장 단어 수의 모분산을 계산한다.
func sentenceLengthVariance(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}

	lengths := make([]float64, 0, len(sentences))
	total := 0.0
	for _, sentence := range sentences {
		length := float64(len(strings.Fields(sentence)))
		lengths = append(lengths, length)
		total += length
	}

	mean := total / float64(len(lengths))
	sum := 0.0
	for _, length := range lengths {
		diff := length - mean
		sum += diff * diff
	}
	return sum / float64(len(lengths))
}

// countAIPatterns 는 원문 전체에서 AI 과용 단어의 등장 횟수를 센다.
func countAIPatterns(text string) int {
	count := 0
	for _, pattern := range aiPatterns {
		count += len(pattern.FindAllStringIndex(text, -1))
	}
	return count
}

// buildSuggestions 는 발동된 휴리스틱별 개선 제안을 만든다. 최대 4개.
func buildSuggestions(repeatedPhrases int, genericHits int, varietyPenalty float64, aiHits int, score int) []string {
	suggestions := make([]string, 0, maxSuggestions)

	if repeatedPhrases > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Found %d repeated phrases - consider varying your wording", repeatedPhrases,
		))
	}
	if genericHits > 3 {
		suggestions = append(suggestions,
			"High density of common academic phrases detected - add more unique insights")
	}
	if varietyPenalty > 8 {
		suggestions = append(suggestions,
			"Sentence structure is repetitive - vary sentence length and structure")
	}
	if aiHits > 5 {
		suggestions = append(suggestions,
			"Consider replacing AI-common terms with more specific language")
	}

	if len(suggestions) == 0 {
		if score >= 90 {
			suggestions = append(suggestions,
				"Excellent originality! Your paper shows strong unique content.")
		} else {
			suggestions = append(suggestions,
				"Good originality overall. Minor improvements could help.")
		}
	}

	suggestions = append(suggestions,
		"Add more citations to support claims and improve credibility")

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
