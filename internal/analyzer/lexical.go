package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Fixed lexicons counted as raw substring occurrences in the lower-cased
// text. Substring matching is intentional: "so" inside "sorry" counts.
var (
	fillers = []string{"um", "uh", "like", "actually", "basically", "literally", "you know", "so", "okay", "right"}

	weakPhrases = []string{"i think", "maybe", "kind of", "sort of", "just", "sorry", "i guess", "probably"}

	apologyPhrases = []string{"sorry", "apologize", "pardon"}
)

var (
	wordPattern     = regexp.MustCompile(`\w+`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

const longSentenceWords = 25

// Metrics are the raw counts the scores are derived from.
type Metrics struct {
	Filler        int `json:"fillerCount"`
	Weak          int `json:"weakCount"`
	Apology       int `json:"apologyCount"`
	Repetition    int `json:"repetitionCount"`
	LongSentences int `json:"longSentenceCount"`
	TotalWords    int `json:"totalWordCount"`
}

// Result holds the rule-based scores, the triggered issue messages and
// the raw metrics behind them.
type Result struct {
	Nervousness float64  `json:"nervousness"`
	Confidence  float64  `json:"confidence"`
	Clarity     float64  `json:"clarity"`
	Issues      []string `json:"detectedIssues"`
	Metrics     Metrics  `json:"metrics"`
}

// Analyze scores a script with deterministic linguistic rules. It is a pure
// function: same text, same result.
func Analyze(text string) Result {
	lower := strings.ToLower(text)
	words := wordPattern.FindAllString(lower, -1)
	sentences := sentencePattern.Split(text, -1)

	m := Metrics{
		Filler:     countOccurrences(lower, fillers),
		Weak:       countOccurrences(lower, weakPhrases),
		Apology:    countOccurrences(lower, apologyPhrases),
		TotalWords: len(words),
	}

	// Immediate triple repetition, all overlapping windows.
	for i := 0; i+2 < len(words); i++ {
		if words[i] == words[i+1] && words[i] == words[i+2] {
			m.Repetition++
		}
	}

	for _, s := range sentences {
		if len(strings.Fields(s)) > longSentenceWords {
			m.LongSentences++
		}
	}

	if m.TotalWords == 0 {
		return Result{
			Nervousness: 0,
			Confidence:  100,
			Clarity:     100,
			Issues:      []string{"No text provided for analysis"},
			Metrics:     m,
		}
	}

	total := float64(m.TotalWords)
	fillerDensity := float64(m.Filler) / total * 100
	apologyDensity := float64(m.Apology) / total * 100
	weakDensity := float64(m.Weak) / total * 100

	nervousness := math.Min(100, fillerDensity*3+apologyDensity*5+float64(m.Repetition)*2)
	confidence := math.Max(0, 100-(weakDensity*4+apologyDensity*3))
	clarity := math.Max(0, math.Min(100, 100-(float64(m.LongSentences)*5+float64(m.Repetition)*10)))

	return Result{
		Nervousness: round1(nervousness),
		Confidence:  round1(confidence),
		Clarity:     round1(clarity),
		Issues:      buildIssues(m),
		Metrics:     m,
	}
}

func countOccurrences(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		n += strings.Count(lower, p)
	}
	return n
}

// buildIssues emits one message per non-zero metric, in fixed order.
func buildIssues(m Metrics) []string {
	var issues []string
	if m.Filler > 0 {
		issues = append(issues, fmt.Sprintf("Contains %d filler words (try reducing 'um', 'uh', 'like')", m.Filler))
	}
	if m.Weak > 0 {
		issues = append(issues, fmt.Sprintf("Contains %d weak phrases (avoid hedging language)", m.Weak))
	}
	if m.Apology > 0 {
		issues = append(issues, fmt.Sprintf("Contains %d apology phrases (unnecessary apologies reduce confidence)", m.Apology))
	}
	if m.Repetition > 0 {
		issues = append(issues, fmt.Sprintf("Word repetition detected (%d instances)", m.Repetition))
	}
	if m.LongSentences > 0 {
		issues = append(issues, fmt.Sprintf("%d long sentences detected (consider breaking them up)", m.LongSentences))
	}
	if len(issues) == 0 {
		issues = []string{"No major issues detected"}
	}
	return issues
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
