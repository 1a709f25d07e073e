// Package analyzer extracts heuristic features from prompt text.
//
// Analysis is a pure function of the input: no state is kept between calls
// and nothing is cached at this layer.
package analyzer

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/teilomillet/promptlift/types"
)

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)

	questionProbe   = regexp.MustCompile(`(?i)\?|\b(what|how|why|when|where|who|which|can you|could you|would you)\b`)
	examplesProbe   = regexp.MustCompile(`(?i)(for example|for instance|e\.g\.|such as|\bexamples?:|\blike this\b)`)
	constraintProbe = regexp.MustCompile(`(?i)\b(must|should|limit|maximum|minimum|at least|at most|no more than|within|exactly|only|avoid|don't|do not|without)\b`)
	contextProbe    = regexp.MustCompile(`(?i)\b(background|context|i am|i'm|we are|we're|my (team|company|project|goal|boss|class|audience)|because|currently|situation|working on)\b`)
	formattingProbe = regexp.MustCompile("(?m)(^\\s*[-*•]\\s|^\\s*\\d+[.)]\\s|^#{1,6}\\s|\\*\\*|```|<[a-z_]+>)")
	structureProbe  = regexp.MustCompile(`(?im)(^\s*\d+[.)]\s|^#{1,6}\s|^\s*[A-Za-z][A-Za-z ]{1,30}:\s*$|^\s*[-*•]\s|^\s*(step \d+|first|second|third|finally)\b)`)

	nestedProbe = regexp.MustCompile(`\([^()]*\)|\[[^\[\]]*\]|\{[^{}]*\}`)

	acronymToken = regexp.MustCompile(`^[A-Z]{2,}[0-9]*s?$`)
	camelToken   = regexp.MustCompile(`^[a-z]+[A-Z][A-Za-z0-9]*$|^[A-Z][a-z0-9]+[A-Z][A-Za-z0-9]*$`)
	snakeToken   = regexp.MustCompile(`^[A-Za-z0-9]+(_[A-Za-z0-9]+)+$`)
	kebabToken   = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)+$`)
)

// complexWordLength is the rune length above which a token counts as complex.
const complexWordLength = 6

// Analyzer extracts an AnalysisResult from text.
type Analyzer struct {
	counter TokenCounter
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTokenCounter sets the counter used for EstimatedTokens.
func WithTokenCounter(c TokenCounter) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.counter = c
		}
	}
}

// New creates an Analyzer. Without a token counter the heuristic estimate is used.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{counter: HeuristicCounter{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze never fails; empty input yields a zero-valued result with
// divide-by-zero guarded ratios.
func (a *Analyzer) Analyze(text string) types.AnalysisResult {
	words := strings.Fields(text)
	wordCount := len(words)
	sentences := countNonEmpty(sentenceSplit.Split(text, -1))
	paragraphs := countNonEmpty(paragraphSplit.Split(text, -1))
	avg := round1(float64(wordCount) / float64(max(1, sentences)))

	indicators := complexity(words, text, avg)

	return types.AnalysisResult{
		Length:                  utf8.RuneCountInString(text),
		WordCount:               wordCount,
		SentenceCount:           sentences,
		ParagraphCount:          paragraphs,
		AverageWordsPerSentence: avg,
		EstimatedTokens:         a.counter.Count(text),
		HasQuestions:            questionProbe.MatchString(text),
		HasExamples:             examplesProbe.MatchString(text),
		HasConstraints:          constraintProbe.MatchString(text),
		HasContext:              contextProbe.MatchString(text),
		HasFormatting:           formattingProbe.MatchString(text),
		HasStructure:            structureProbe.MatchString(text),
		ComplexityIndicators:    indicators,
	}
}

func complexity(words []string, text string, avg float64) types.ComplexityIndicators {
	var technical, complexWords int
	for _, w := range words {
		token := strings.TrimFunc(w, func(r rune) bool {
			return unicode.IsPunct(r) && r != '_' && r != '-'
		})
		token = strings.Trim(token, "-_")
		if token == "" {
			continue
		}
		if IsTechnicalTerm(token) {
			technical++
		}
		if utf8.RuneCountInString(token) > complexWordLength {
			complexWords++
		}
	}
	nested := len(nestedProbe.FindAllStringIndex(text, -1))

	score := float64(technical)*3 + float64(complexWords)*1.5 + float64(nested)*2
	if avg > 20 {
		score += 10
	}
	score = math.Min(100, score)

	return types.ComplexityIndicators{
		TechnicalTerms:      technical,
		ComplexWords:        complexWords,
		AvgWordsPerSentence: avg,
		NestedStructures:    nested,
		ComplexityScore:     int(math.Round(score)),
	}
}

// IsTechnicalTerm reports whether a punctuation-trimmed token looks like an
// acronym or a camelCase, snake_case or kebab-case identifier.
func IsTechnicalTerm(token string) bool {
	return acronymToken.MatchString(token) ||
		camelToken.MatchString(token) ||
		snakeToken.MatchString(token) ||
		kebabToken.MatchString(token)
}

// WordCount is the number of non-empty whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func countNonEmpty(parts []string) int {
	n := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
