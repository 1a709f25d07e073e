// Package scorer rates prompt quality along weighted criteria and explains
// the difference between an original prompt and its rewrite.
package scorer

import (
	"fmt"
	"math"
	"sort"

	"github.com/teilomillet/promptlift/analyzer"
	"github.com/teilomillet/promptlift/rules"
	"github.com/teilomillet/promptlift/types"
	"github.com/teilomillet/promptlift/utils"
)

// RecommendationThreshold is the criterion score below which a
// recommendation is produced.
const RecommendationThreshold = 70

// highPriorityThreshold marks recommendations for criteria scoring below it as high priority.
const highPriorityThreshold = 50

// CriterionScore is the result for a single criterion.
type CriterionScore struct {
	Criterion     Criterion `json:"criterion"`
	Score         int       `json:"score"`
	Weight        float64   `json:"weight"`
	WeightedScore float64   `json:"weightedScore"`
	Description   string    `json:"description"`
}

// Recommendation is advice for a criterion that scored below the threshold.
type Recommendation struct {
	Category            Criterion      `json:"category"`
	Priority            types.Priority `json:"priority"`
	Suggestion          string         `json:"suggestion"`
	ExpectedImprovement int            `json:"expectedImprovement"`
	score               int
}

// QualityReport is the full quality assessment of a prompt.
type QualityReport struct {
	Overall         int                          `json:"overall"`
	Grade           string                       `json:"grade"`
	Breakdown       map[Criterion]CriterionScore `json:"breakdown"`
	Analysis        types.AnalysisResult         `json:"analysis"`
	Recommendations []Recommendation             `json:"recommendations"`
}

// Score returns the score for criterion c, or 0 if it was not evaluated.
func (r QualityReport) Score(c Criterion) int {
	return r.Breakdown[c].Score
}

// Scorer evaluates prompts against a criteria catalog.
type Scorer struct {
	analyzer *analyzer.Analyzer
	catalog  *rules.Catalog
	criteria []CriterionSpec
	logger   utils.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

func WithAnalyzer(a *analyzer.Analyzer) Option {
	return func(s *Scorer) { s.analyzer = a }
}

func WithCatalog(c *rules.Catalog) Option {
	return func(s *Scorer) { s.catalog = c }
}

func WithLogger(l utils.Logger) Option {
	return func(s *Scorer) { s.logger = l }
}

// WithCriteria replaces the criteria catalog.
func WithCriteria(criteria []CriterionSpec) Option {
	return func(s *Scorer) { s.criteria = criteria }
}

// New creates a Scorer with the default criteria, catalog and analyzer.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		analyzer: analyzer.New(),
		catalog:  rules.Default(),
		criteria: DefaultCriteria(),
		logger:   utils.NewLogger(utils.LogLevelWarn),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Criteria returns the criteria catalog in evaluation order.
func (s *Scorer) Criteria() []CriterionSpec {
	return s.criteria
}

// CalculateQualityScore analyzes text and scores it.
func (s *Scorer) CalculateQualityScore(text string, style types.Style, platform types.Platform) QualityReport {
	return s.ScoreAnalysis(text, s.analyzer.Analyze(text), style, platform)
}

// ScoreAnalysis scores text whose analysis has already been computed.
func (s *Scorer) ScoreAnalysis(text string, analysis types.AnalysisResult, style types.Style, platform types.Platform) QualityReport {
	in := Input{Text: text, Analysis: analysis, Style: style, Platform: platform, Catalog: s.catalog}

	breakdown := make(map[Criterion]CriterionScore, len(s.criteria))
	var total float64
	var recs []Recommendation
	for _, spec := range s.criteria {
		score := s.CalculateCriterionScore(spec, in)
		weighted := float64(score) * spec.Weight
		total += weighted
		breakdown[spec.Name] = CriterionScore{
			Criterion:     spec.Name,
			Score:         score,
			Weight:        spec.Weight,
			WeightedScore: weighted,
			Description:   spec.Description,
		}
		if score < RecommendationThreshold {
			priority := types.PriorityMedium
			if score < highPriorityThreshold {
				priority = types.PriorityHigh
			}
			recs = append(recs, Recommendation{
				Category:            spec.Name,
				Priority:            priority,
				Suggestion:          spec.Advice,
				ExpectedImprovement: int(math.Round(float64(100-score) * spec.Weight)),
				score:               score,
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority.Rank() != recs[j].Priority.Rank() {
			return recs[i].Priority.Rank() < recs[j].Priority.Rank()
		}
		return recs[i].score < recs[j].score
	})

	overall := clampInt(int(math.Round(total)), 0, 100)
	return QualityReport{
		Overall:         overall,
		Grade:           CalculateGrade(overall),
		Breakdown:       breakdown,
		Analysis:        analysis,
		Recommendations: recs,
	}
}

// CalculateCriterionScore is the rounded weighted mean of the criterion's
// sub-factors. A sub-factor that panics contributes 0.
func (s *Scorer) CalculateCriterionScore(spec CriterionSpec, in Input) int {
	var sum, weights float64
	for _, f := range spec.Factors {
		sum += s.evaluate(spec.Name, f, in) * f.Weight
		weights += f.Weight
	}
	if weights == 0 {
		return 0
	}
	return clampInt(int(math.Round(sum/weights)), 0, 100)
}

func (s *Scorer) evaluate(c Criterion, f SubFactor, in Input) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			err := types.NewPromptError(types.ErrorTypeEvaluator, fmt.Sprintf("%s/%s", c, f.Name), fmt.Errorf("%v", r))
			s.logger.Warn("Sub-factor evaluator failed, scoring it as 0", err.LoggableFields()...)
			score = 0
		}
	}()
	if f.Evaluate == nil {
		return 0
	}
	v := f.Evaluate(in)
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
