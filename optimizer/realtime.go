package optimizer

import (
	"fmt"
	"strings"

	"github.com/teilomillet/promptlift/types"
)

// examplesTipWords is the length above which a prompt without examples gets a tip.
const examplesTipWords = 20

// RealtimeSuggestions gives fast feedback while a prompt is being written. It
// runs only the analyzer and the immediate suggestions, adds up to three quick
// tips, and never reads or writes the cache or analytics. Invalid options fall
// back to the engine defaults.
func (e *Engine) RealtimeSuggestions(prompt string, opts ...OptimizeOption) RealtimeResult {
	o := e.defaults
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		e.logger.Debug("Ignoring invalid realtime options", "error", err)
		o = e.defaults
	}

	analysis := e.analyzer.Analyze(prompt)
	res := RealtimeResult{
		Analysis:    analysis,
		Suggestions: []types.Suggestion{},
		QuickTips:   []string{},
	}
	if strings.TrimSpace(prompt) == "" {
		return res
	}

	res.Suggestions = e.generator.ImmediateSuggestions(prompt, analysis)
	res.QuickTips = e.quickTips(analysis, o.Platform)
	return res
}

func (e *Engine) quickTips(analysis types.AnalysisResult, platform types.Platform) []string {
	var tips []string
	if pr, ok := e.catalog.Platform(platform); ok && pr.MaxOptimalLength > 0 && analysis.WordCount > pr.MaxOptimalLength {
		tips = append(tips, fmt.Sprintf("%s works best with prompts under %d words.", pr.Name, pr.MaxOptimalLength))
	}
	if !analysis.HasContext {
		tips = append(tips, "Add background: who the answer is for and why you need it.")
	}
	if !analysis.HasConstraints {
		tips = append(tips, "State limits such as length, tone or format.")
	}
	if !analysis.HasExamples && analysis.WordCount > examplesTipWords {
		tips = append(tips, "Include an example of the output you expect.")
	}
	if len(tips) > maxQuickTips {
		tips = tips[:maxQuickTips]
	}
	return tips
}
