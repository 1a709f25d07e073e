// File: optimizer/types.go

package optimizer

import (
	"time"

	"github.com/teilomillet/promptlift/scorer"
	"github.com/teilomillet/promptlift/types"
)

// TextVersion is one side of an optimization.
type TextVersion struct {
	Text     string                `json:"text"`
	Score    int                   `json:"score"`
	Grade    string                `json:"grade"`
	Analysis *types.AnalysisResult `json:"analysis,omitempty"`
}

// Alternative is the rewrite produced at a level other than the requested one.
type Alternative struct {
	Level types.Level `json:"level"`
	Text  string      `json:"text"`
	Score int         `json:"score"`
	Grade string      `json:"grade"`
}

type GradeChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AspectImprovement is a criterion that improved by more than minAspectDelta points.
type AspectImprovement struct {
	Criterion scorer.Criterion `json:"criterion"`
	Before    int              `json:"before"`
	After     int              `json:"after"`
	Change    int              `json:"change"`
}

type Improvement struct {
	OverallScoreChange int                 `json:"overallScoreChange"`
	GradeChange        GradeChange         `json:"gradeChange"`
	AspectImprovements []AspectImprovement `json:"aspectImprovements"`
	LengthChange       int                 `json:"lengthChange"`
	WordCountChange    int                 `json:"wordCountChange"`
	IssuesResolved     int                 `json:"issuesResolved"`
	NewSuggestions     int                 `json:"newSuggestions"`
	Confidence         int                 `json:"confidence"`
	Badges             []scorer.Badge      `json:"badges"`
	TimeSavedMinutes   int                 `json:"timeSavedMinutes"`
}

type Metadata struct {
	Level            types.Level    `json:"level"`
	Platform         types.Platform `json:"platform"`
	Style            types.Style    `json:"style"`
	ProcessingTimeMs int64          `json:"processingTimeMs"`
	Timestamp        time.Time      `json:"timestamp"`
}

// OptimizationResult is everything Optimize returns. Cached results are
// shared between callers and must not be modified.
type OptimizationResult struct {
	ID           string                  `json:"id"`
	Original     TextVersion             `json:"original"`
	Optimized    TextVersion             `json:"optimized"`
	Suggestions  *types.SuggestionBundle `json:"suggestions,omitempty"`
	Alternatives []Alternative           `json:"alternatives"`
	Improvement  Improvement             `json:"improvement"`
	Metadata     Metadata                `json:"metadata"`
}

// Record summarizes the result for the history log.
func (r *OptimizationResult) Record() types.HistoryRecord {
	return types.HistoryRecord{
		ID:               r.ID,
		Timestamp:        r.Metadata.Timestamp,
		Level:            r.Metadata.Level,
		Platform:         r.Metadata.Platform.Label(),
		Style:            r.Metadata.Style,
		OriginalText:     r.Original.Text,
		OptimizedText:    r.Optimized.Text,
		OriginalScore:    r.Original.Score,
		OptimizedScore:   r.Optimized.Score,
		OriginalGrade:    r.Original.Grade,
		OptimizedGrade:   r.Optimized.Grade,
		ScoreChange:      r.Improvement.OverallScoreChange,
		ProcessingTimeMs: r.Metadata.ProcessingTimeMs,
	}
}

// AnalyticsState is the process-wide usage summary. AverageScoreImprovement
// is the mean over the ImprovedOptimizations runs whose score went up.
type AnalyticsState struct {
	Optimizations           int            `json:"optimizations"`
	ImprovedOptimizations   int            `json:"improvedOptimizations"`
	PlatformUsage           map[string]int `json:"platformUsage"`
	AverageScoreImprovement float64        `json:"averageScoreImprovement"`
}

// merge combines two summaries as if their runs had been recorded by one.
func (a AnalyticsState) merge(b AnalyticsState) AnalyticsState {
	out := AnalyticsState{
		Optimizations:         a.Optimizations + b.Optimizations,
		ImprovedOptimizations: a.ImprovedOptimizations + b.ImprovedOptimizations,
		PlatformUsage:         make(map[string]int, len(a.PlatformUsage)+len(b.PlatformUsage)),
	}
	for k, v := range a.PlatformUsage {
		out.PlatformUsage[k] += v
	}
	for k, v := range b.PlatformUsage {
		out.PlatformUsage[k] += v
	}
	if out.ImprovedOptimizations > 0 {
		out.AverageScoreImprovement = (a.AverageScoreImprovement*float64(a.ImprovedOptimizations) +
			b.AverageScoreImprovement*float64(b.ImprovedOptimizations)) / float64(out.ImprovedOptimizations)
	}
	return out
}

func (a AnalyticsState) clone() AnalyticsState {
	usage := make(map[string]int, len(a.PlatformUsage))
	for k, v := range a.PlatformUsage {
		usage[k] = v
	}
	a.PlatformUsage = usage
	return a
}

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BatchResult holds one slot per input prompt; failed slots are nil and have
// a matching entry in Errors.
type BatchResult struct {
	Results []*OptimizationResult   `json:"results"`
	Errors  []*types.BatchItemError `json:"errors"`
	Summary BatchSummary            `json:"summary"`
}

// RealtimeResult is the lightweight feedback returned while a prompt is typed.
type RealtimeResult struct {
	Analysis    types.AnalysisResult `json:"analysis"`
	Suggestions []types.Suggestion   `json:"suggestions"`
	QuickTips   []string             `json:"quickTips"`
}
