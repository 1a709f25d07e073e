// File: optimizer/assessment.go

package optimizer

import (
	"fmt"

	"github.com/teilomillet/promptlift/scorer"
	"github.com/teilomillet/promptlift/suggest"
	"github.com/teilomillet/promptlift/types"
)

// assessment carries every intermediate product of one rewrite so the
// improvement summary can be computed without re-running the pipeline.
type assessment struct {
	text     string
	analysis types.AnalysisResult
	report   scorer.QualityReport
	bundle   types.SuggestionBundle

	rewrite         string
	rewriteAnalysis types.AnalysisResult
	rewriteReport   scorer.QualityReport

	explanation scorer.Explanation
}

// assess runs analysis, scoring, suggestion and rewriting for one level.
//
// The steps are:
//  1. Analyze and score the original text
//  2. Build the suggestion bundle from the analysis and the report
//  3. Apply the bundle in stage order to produce the rewrite
//  4. Analyze and score the rewrite against the same style and platform
//  5. Compare the two reports
func (e *Engine) assess(prompt string, o Options) assessment {
	gopts := suggest.Options{Level: o.Level, Platform: o.Platform, Style: o.Style}

	a := assessment{text: prompt}
	a.analysis = e.analyzer.Analyze(prompt)
	a.report = e.scorer.ScoreAnalysis(prompt, a.analysis, o.Style, o.Platform)
	a.bundle = e.generator.GenerateSuggestions(prompt, a.analysis, &a.report, gopts)
	a.rewrite = e.generator.GenerateOptimizedPrompt(prompt, a.analysis, a.bundle, gopts)

	a.rewriteAnalysis = e.analyzer.Analyze(a.rewrite)
	a.rewriteReport = e.scorer.ScoreAnalysis(a.rewrite, a.rewriteAnalysis, o.Style, o.Platform)
	a.explanation = e.scorer.Compare(a.report, a.rewriteReport, a.rewrite, o.Platform)
	return a
}

// alternatives rewrites prompt at the two levels that were not requested.
// A level that fails is logged and left out.
func (e *Engine) alternatives(prompt string, o Options) []Alternative {
	out := make([]Alternative, 0, len(types.Levels)-1)
	for _, level := range types.Levels {
		if level == o.Level {
			continue
		}
		alt, err := e.alternative(prompt, o, level)
		if err != nil {
			e.logger.Warn("Skipping alternative", "level", level, "error", err)
			continue
		}
		out = append(out, alt)
	}
	return out
}

func (e *Engine) alternative(prompt string, o Options, level types.Level) (alt Alternative, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("alternative at level %s: %v", level, r)
		}
	}()
	o.Level = level
	a := e.assess(prompt, o)
	return Alternative{
		Level: level,
		Text:  a.rewrite,
		Score: a.rewriteReport.Overall,
		Grade: a.rewriteReport.Grade,
	}, nil
}
