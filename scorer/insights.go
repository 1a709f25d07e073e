package scorer

import (
	"math"

	"github.com/teilomillet/promptlift/types"
)

// Impact classifies the size of a criterion improvement.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// minCategoryDelta is the smallest per-criterion gain worth reporting.
const minCategoryDelta = 5

// CategoryImprovement records the gain on one criterion.
type CategoryImprovement struct {
	Criterion Criterion `json:"criterion"`
	Before    int       `json:"before"`
	After     int       `json:"after"`
	Delta     int       `json:"delta"`
	Impact    Impact    `json:"impact"`
}

// Badge is a named label summarizing a kind of improvement.
type Badge struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Explanation compares an original prompt with its rewrite.
type Explanation struct {
	OriginalScore        int                   `json:"originalScore"`
	OptimizedScore       int                   `json:"optimizedScore"`
	OverallChange        int                   `json:"overallChange"`
	CategoryImprovements []CategoryImprovement `json:"categoryImprovements"`
	Badges               []Badge               `json:"badges"`
	Confidence           int                   `json:"confidence"`
	TimeSavedMinutes     int                   `json:"timeSavedMinutes"`
}

type badgeRule struct {
	badge Badge
	earn  func(overall int, deltas map[Criterion]int, platformMatch bool) bool
}

const minorPolishID = "minor-polish"

// badgeCatalog is evaluated in order. minor-polish is only awarded when no
// other badge qualifies.
var badgeCatalog = []badgeRule{
	{
		badge: Badge{ID: "major-improvement", Label: "Major Improvement", Description: "Overall quality rose by 25 points or more."},
		earn:  func(o int, _ map[Criterion]int, _ bool) bool { return o >= 25 },
	},
	{
		badge: Badge{ID: "clarity-boost", Label: "Clarity Boost", Description: "The request is much easier to understand."},
		earn:  func(_ int, d map[Criterion]int, _ bool) bool { return d[Clarity] >= 15 },
	},
	{
		badge: Badge{ID: "structure-upgrade", Label: "Structure Upgrade", Description: "The request is better organized."},
		earn:  func(_ int, d map[Criterion]int, _ bool) bool { return d[Structure] >= 12 },
	},
	{
		badge: Badge{ID: "context-enrichment", Label: "Context Enrichment", Description: "Background, audience or purpose was added."},
		earn:  func(_ int, d map[Criterion]int, _ bool) bool { return d[Context] >= 10 },
	},
	{
		badge: Badge{ID: "specificity-enhancement", Label: "Specificity Enhancement", Description: "The request is more concrete."},
		earn:  func(_ int, d map[Criterion]int, _ bool) bool { return d[Specificity] >= 8 },
	},
	{
		badge: Badge{ID: "platform-optimization", Label: "Platform Optimized", Description: "The rewrite follows the target platform's conventions."},
		earn:  func(_ int, _ map[Criterion]int, p bool) bool { return p },
	},
	{
		badge: Badge{ID: minorPolishID, Label: "Minor Polish", Description: "Small refinements to wording."},
		earn:  func(o int, _ map[Criterion]int, _ bool) bool { return o >= 2 },
	},
}

// Compare builds the full explanation for two already-computed reports.
func (s *Scorer) Compare(original, optimized QualityReport, optimizedText string, platform types.Platform) Explanation {
	overall := optimized.Overall - original.Overall
	deltas := make(map[Criterion]int, len(s.criteria))
	var improvements []CategoryImprovement
	for _, spec := range s.criteria {
		before, after := original.Score(spec.Name), optimized.Score(spec.Name)
		d := after - before
		deltas[spec.Name] = d
		if d >= minCategoryDelta {
			improvements = append(improvements, CategoryImprovement{
				Criterion: spec.Name,
				Before:    before,
				After:     after,
				Delta:     d,
				Impact:    impactFor(d),
			})
		}
	}

	platformMatch := s.matchesPlatform(optimizedText, platform)
	badges := awardBadges(overall, deltas, platformMatch)

	return Explanation{
		OriginalScore:        original.Overall,
		OptimizedScore:       optimized.Overall,
		OverallChange:        overall,
		CategoryImprovements: improvements,
		Badges:               badges,
		Confidence:           confidenceFromReports(original, optimized),
		TimeSavedMinutes: CalculateTimeSaved(TimeSavedInput{
			OverallImprovement:      overall,
			CategoryDeltas:          deltas,
			PlatformMismatchAvoided: platformMatch,
		}),
	}
}

// ExplainImprovements scores both texts and explains the difference.
func (s *Scorer) ExplainImprovements(original, optimized string, platform types.Platform, style types.Style) Explanation {
	before := s.CalculateQualityScore(original, style, platform)
	after := s.CalculateQualityScore(optimized, style, platform)
	return s.Compare(before, after, optimized, platform)
}

// CalculateConfidence estimates, on a 0-100 scale, how confident we are that
// optimized is a real improvement over original.
func (s *Scorer) CalculateConfidence(original, optimized string, platform types.Platform, style types.Style) int {
	before := s.CalculateQualityScore(original, style, platform)
	after := s.CalculateQualityScore(optimized, style, platform)
	return confidenceFromReports(before, after)
}

func confidenceFromReports(original, optimized QualityReport) int {
	c := 50.0
	delta := float64(optimized.Overall - original.Overall)
	if delta > 0 {
		c += math.Min(30, delta*1.5)
	} else if delta < 0 {
		c -= math.Min(30, -delta*1.5)
	}

	ratio := float64(optimized.Analysis.Length) / float64(max(1, original.Analysis.Length))
	switch {
	case ratio >= 1.2 && ratio <= 2.5:
		c += 10
	case ratio > 3:
		c -= 5
	}

	if !original.Analysis.HasStructure && optimized.Analysis.HasStructure {
		c += 15
	}
	if !original.Analysis.HasContext && optimized.Analysis.HasContext {
		c += 10
	}
	if !original.Analysis.HasExamples && optimized.Analysis.HasExamples {
		c += 8
	}
	return clampInt(int(math.Round(c)), 0, 100)
}

func (s *Scorer) matchesPlatform(text string, platform types.Platform) bool {
	pr, ok := s.catalog.Platform(platform)
	if !ok {
		return false
	}
	for _, p := range pr.OptimizationPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func awardBadges(overall int, deltas map[Criterion]int, platformMatch bool) []Badge {
	var out []Badge
	for _, rule := range badgeCatalog {
		if rule.badge.ID == minorPolishID {
			if len(out) == 0 && rule.earn(overall, deltas, platformMatch) {
				out = append(out, rule.badge)
			}
			continue
		}
		if rule.earn(overall, deltas, platformMatch) {
			out = append(out, rule.badge)
		}
	}
	return out
}

func impactFor(delta int) Impact {
	switch {
	case delta >= 15:
		return ImpactHigh
	case delta >= 8:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// Minutes credited per improvement signal.
const (
	minutesClarificationMajor = 5.0
	minutesClarificationMid   = 3.0
	minutesClarificationMinor = 1.0
	minutesStructure          = 2.0
	minutesContext            = 3.0
	minutesSpecificity        = 2.0
	minutesPlatformMismatch   = 2.0
	minutesBaseInteraction    = 1.5
)

// TimeSavedInput carries the signals used to estimate minutes saved.
type TimeSavedInput struct {
	OverallImprovement      int
	CategoryDeltas          map[Criterion]int
	PlatformMismatchAvoided bool
}

// CalculateTimeSaved estimates the minutes of back-and-forth avoided by the
// rewrite. The result is never negative.
func CalculateTimeSaved(in TimeSavedInput) int {
	var minutes float64
	switch ov := in.OverallImprovement; {
	case ov >= 20:
		minutes += minutesClarificationMajor
	case ov >= 10:
		minutes += minutesClarificationMid
	case ov > 0:
		minutes += minutesClarificationMinor
	}
	if in.CategoryDeltas[Structure] >= 10 {
		minutes += minutesStructure
	}
	if in.CategoryDeltas[Context] >= 10 {
		minutes += minutesContext
	}
	if in.CategoryDeltas[Specificity] >= 10 {
		minutes += minutesSpecificity
	}
	if in.PlatformMismatchAvoided {
		minutes += minutesPlatformMismatch
	}
	if in.OverallImprovement > 5 {
		minutes += minutesBaseInteraction
	}
	return int(math.Round(math.Max(0, minutes)))
}
