package scorer

import (
	"regexp"
	"strings"

	"github.com/teilomillet/promptlift/rules"
	"github.com/teilomillet/promptlift/types"
)

// Criterion is one weighted quality dimension.
type Criterion string

const (
	Clarity      Criterion = "clarity"
	Specificity  Criterion = "specificity"
	Context      Criterion = "context"
	Structure    Criterion = "structure"
	Completeness Criterion = "completeness"
)

// Input is what every sub-factor evaluator sees.
type Input struct {
	Text     string
	Analysis types.AnalysisResult
	Style    types.Style
	Platform types.Platform
	Catalog  *rules.Catalog
}

// Evaluator scores one sub-factor on a 0-100 scale.
type Evaluator func(in Input) float64

// SubFactor is a weighted evaluator within a criterion.
type SubFactor struct {
	Name     string
	Weight   float64
	Evaluate Evaluator
}

// CriterionSpec defines a criterion: its top-level weight, the advice given
// when it scores low, and its sub-factors (whose weights sum to 1.0).
type CriterionSpec struct {
	Name        Criterion
	Weight      float64
	Description string
	Advice      string
	Factors     []SubFactor
}

var (
	concreteNumber  = regexp.MustCompile(`\b\d+([.,]\d+)?\b`)
	quotedPhrase    = regexp.MustCompile(`"[^"]+"|'[^']{3,}'`)
	measurableProbe = regexp.MustCompile(`(?i)\b(\d+|one|two|three|four|five|six|seven|eight|nine|ten)\s*-?\s*(words?|sentences?|paragraphs?|items?|steps?|bullets?|examples?|minutes?|pages?|lines?|ideas?|points?)\b`)
	audienceProbe   = regexp.MustCompile(`(?i)\b(audience|readers?|for (a |an |my |the |our )?(beginners?|students?|team|kids|children|customers?|clients?|experts?|developers?|executives?|managers?|newcomers?))\b`)
	purposeProbe    = regexp.MustCompile(`(?i)\b(so that|in order to|goal|purpose|because|to help|aim|objective|i want to|i need to|we need to)\b`)
	transitionProbe = regexp.MustCompile(`(?i)\b(first|then|next|after that|finally|additionally|also|therefore|afterwards)\b`)
)

// DefaultCriteria returns the fixed criteria catalog. Top-level weights sum to 1.0.
func DefaultCriteria() []CriterionSpec {
	return []CriterionSpec{
		{
			Name:        Clarity,
			Weight:      0.25,
			Description: "How easy the request is to understand",
			Advice:      "Use direct, specific wording and state exactly what you want.",
			Factors: []SubFactor{
				{Name: "sentence_length", Weight: 0.30, Evaluate: sentenceLength},
				{Name: "vague_language", Weight: 0.30, Evaluate: vagueLanguage},
				{Name: "direct_request", Weight: 0.25, Evaluate: directRequest},
				{Name: "filler_words", Weight: 0.15, Evaluate: fillerWords},
			},
		},
		{
			Name:        Specificity,
			Weight:      0.25,
			Description: "How concrete and detailed the request is",
			Advice:      "Add concrete details: names, numbers, scope, and the exact deliverable.",
			Factors: []SubFactor{
				{Name: "concrete_details", Weight: 0.35, Evaluate: concreteDetails},
				{Name: "length_adequacy", Weight: 0.25, Evaluate: lengthAdequacy},
				{Name: "technical_precision", Weight: 0.20, Evaluate: technicalPrecision},
				{Name: "measurable_output", Weight: 0.20, Evaluate: measurableOutput},
			},
		},
		{
			Name:        Context,
			Weight:      0.20,
			Description: "How much background, audience and purpose is given",
			Advice:      "Explain the background, who the answer is for, and why you need it.",
			Factors: []SubFactor{
				{Name: "background", Weight: 0.40, Evaluate: background},
				{Name: "audience", Weight: 0.30, Evaluate: audience},
				{Name: "purpose", Weight: 0.30, Evaluate: purpose},
			},
		},
		{
			Name:        Structure,
			Weight:      0.15,
			Description: "How well the request is organized",
			Advice:      "Organize the request into sections or numbered steps.",
			Factors: []SubFactor{
				{Name: "formatting", Weight: 0.35, Evaluate: formatting},
				{Name: "organization", Weight: 0.35, Evaluate: organization},
				{Name: "logical_flow", Weight: 0.30, Evaluate: logicalFlow},
			},
		},
		{
			Name:        Completeness,
			Weight:      0.15,
			Description: "Whether format, constraints and examples are specified",
			Advice:      "Specify the output format, any constraints, and an example of what you expect.",
			Factors: []SubFactor{
				{Name: "output_format", Weight: 0.35, Evaluate: outputFormat},
				{Name: "constraints", Weight: 0.35, Evaluate: constraints},
				{Name: "examples", Weight: 0.30, Evaluate: examples},
			},
		},
	}
}

func sentenceLength(in Input) float64 {
	if in.Analysis.WordCount == 0 {
		return 0
	}
	avg := in.Analysis.AverageWordsPerSentence
	switch {
	case avg < 8:
		return 50 + avg*6
	case avg <= 20:
		return 100
	case avg <= 30:
		return 100 - (avg-20)*4
	default:
		return max(30, 60-(avg-30)*2)
	}
}

func vagueLanguage(in Input) float64 {
	if in.Analysis.WordCount == 0 {
		return 0
	}
	n := len(in.Catalog.Lexicon.Vague.FindAllStringIndex(in.Text, -1))
	return max(0, 100-20*float64(n))
}

func directRequest(in Input) float64 {
	if in.Analysis.WordCount == 0 {
		return 0
	}
	if in.Analysis.HasQuestions || StartsWithImperative(in.Text, in.Catalog) {
		return 100
	}
	return 45
}

func fillerWords(in Input) float64 {
	if in.Analysis.WordCount == 0 {
		return 0
	}
	n := len(in.Catalog.Lexicon.Filler.FindAllStringIndex(in.Text, -1))
	return max(0, 100-25*float64(n))
}

func concreteDetails(in Input) float64 {
	if in.Analysis.WordCount == 0 {
		return 0
	}
	n := len(concreteNumber.FindAllStringIndex(in.Text, -1))
	n += len(quotedPhrase.FindAllStringIndex(in.Text, -1))
	n += properNouns(in.Text)
	return min(100, 30+15*float64(n))
}

func lengthAdequacy(in Input) float64 {
	wc := in.Analysis.WordCount
	var score float64
	switch {
	case wc == 0:
		return 0
	case wc < 5:
		score = 15
	case wc < 10:
		score = 35
	case wc < 20:
		score = 60
	case wc <= 150:
		score = 100
	case wc <= 300:
		score = 85
	default:
		score = 65
	}
	if pr, ok := in.Catalog.Platform(in.Platform); ok && wc > pr.MaxOptimalLength {
		score = min(score, 60)
	}
	return score
}

func technicalPrecision(in Input) float64 {
	tech := in.Analysis.ComplexityIndicators.TechnicalTerms
	if in.Style == types.StyleTechnical && tech == 0 {
		return 30
	}
	return min(100, 50+12*float64(tech))
}

func measurableOutput(in Input) float64 {
	if measurableProbe.MatchString(in.Text) {
		return 100
	}
	return 35
}

func background(in Input) float64 {
	if in.Analysis.HasContext {
		return 100
	}
	return 20
}

func audience(in Input) float64 {
	if audienceProbe.MatchString(in.Text) {
		return 100
	}
	return 30
}

func purpose(in Input) float64 {
	if purposeProbe.MatchString(in.Text) {
		return 100
	}
	return 30
}

func formatting(in Input) float64 {
	switch {
	case in.Analysis.HasFormatting:
		return 100
	case in.Analysis.WordCount < 15:
		return 60
	default:
		return 30
	}
}

func organization(in Input) float64 {
	switch {
	case in.Analysis.HasStructure:
		return 100
	case in.Analysis.ParagraphCount > 1:
		return 75
	case in.Analysis.WordCount < 15:
		return 55
	default:
		return 35
	}
}

func logicalFlow(in Input) float64 {
	switch {
	case transitionProbe.MatchString(in.Text):
		return 100
	case in.Analysis.SentenceCount <= 2:
		return 60
	default:
		return 40
	}
}

func outputFormat(in Input) float64 {
	if in.Catalog.Lexicon.FormatCue.MatchString(in.Text) {
		return 100
	}
	return 25
}

func constraints(in Input) float64 {
	if in.Analysis.HasConstraints {
		return 100
	}
	return 30
}

func examples(in Input) float64 {
	switch {
	case in.Analysis.HasExamples:
		return 100
	case in.Analysis.WordCount < 30:
		return 50
	default:
		return 20
	}
}

// StartsWithImperative reports whether the first word is a known request verb.
func StartsWithImperative(text string, c *rules.Catalog) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	first := strings.ToLower(strings.Trim(fields[0], ".,;:!?\"'()"))
	return c.Lexicon.Imperatives[first]
}

// properNouns counts capitalized words that do not start a sentence.
func properNouns(text string) int {
	n := 0
	sentenceStart := true
	for _, w := range strings.Fields(text) {
		trimmed := strings.Trim(w, "\"'()[]{},;:")
		if !sentenceStart && len(trimmed) > 1 && trimmed[0] >= 'A' && trimmed[0] <= 'Z' && !strings.HasPrefix(trimmed, "I'") {
			n++
		}
		sentenceStart = strings.HasSuffix(w, ".") || strings.HasSuffix(w, "!") || strings.HasSuffix(w, "?") || strings.HasSuffix(w, ":")
	}
	return n
}
