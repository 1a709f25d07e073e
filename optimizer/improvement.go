// File: optimizer/improvement.go

package optimizer

import (
	"unicode/utf8"

	"github.com/teilomillet/promptlift/scorer"
	"github.com/teilomillet/promptlift/types"
)

// calculateImprovement summarizes how the rewrite differs from the original.
func (e *Engine) calculateImprovement(a assessment) Improvement {
	imp := Improvement{
		OverallScoreChange: a.rewriteReport.Overall - a.report.Overall,
		GradeChange:        GradeChange{From: a.report.Grade, To: a.rewriteReport.Grade},
		AspectImprovements: []AspectImprovement{},
		LengthChange:       utf8.RuneCountInString(a.rewrite) - utf8.RuneCountInString(a.text),
		WordCountChange:    a.rewriteAnalysis.WordCount - a.analysis.WordCount,
		Confidence:         a.explanation.Confidence,
		Badges:             a.explanation.Badges,
		TimeSavedMinutes:   a.explanation.TimeSavedMinutes,
	}
	if imp.Badges == nil {
		imp.Badges = []scorer.Badge{}
	}

	for _, spec := range e.scorer.Criteria() {
		before, after := a.report.Score(spec.Name), a.rewriteReport.Score(spec.Name)
		if change := after - before; change > minAspectDelta {
			imp.AspectImprovements = append(imp.AspectImprovements, AspectImprovement{
				Criterion: spec.Name,
				Before:    before,
				After:     after,
				Change:    change,
			})
		}
	}

	before := a.bundle.Immediate
	after := e.generator.ImmediateSuggestions(a.rewrite, a.rewriteAnalysis)
	imp.IssuesResolved = countMissing(before, after)
	imp.NewSuggestions = countMissing(after, before)
	return imp
}

// countMissing counts the suggestion types in from that are absent in to.
func countMissing(from, to []types.Suggestion) int {
	n := 0
	for _, s := range from {
		if !types.Has(to, s.Type) {
			n++
		}
	}
	return n
}
