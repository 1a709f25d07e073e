// Package rules holds the static platform, style and task tables that drive
// scoring and rewriting. A Catalog is built once and never mutated; components
// receive it through their constructors so tests can substitute their own.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/teilomillet/promptlift/types"
)

// TaskType is a detected category of request.
type TaskType string

const (
	TaskNone            TaskType = ""
	TaskCreativeWriting TaskType = "creative_writing"
	TaskCodeGeneration  TaskType = "code_generation"
	TaskAnalysis        TaskType = "analysis"
	TaskExplanation     TaskType = "explanation"
	TaskComparison      TaskType = "comparison"
	TaskPlanning        TaskType = "planning"
	TaskSummarization   TaskType = "summarization"
)

// MinTaskConfidence is the confidence a task type must exceed to be detected.
const MinTaskConfidence = 0.3

// PlatformRules describes how a chat platform prefers to be prompted.
type PlatformRules struct {
	ID                 types.Platform
	Name               string
	Strengths          []string
	Weaknesses         []string
	PrefixRules        []string
	StructureRules     []string
	SuffixRules        []string
	AvoidPatterns      []*regexp.Regexp
	MaxOptimalLength   int // words
	PreferredStructure string
	// OptimizationPatterns match text that was tailored for this platform.
	OptimizationPatterns []*regexp.Regexp
}

// StyleRules describes a writing register.
type StyleRules struct {
	Characteristics        []string
	PrefixEnhancements     []string
	StructuralEnhancements []string
	LanguageEnhancements   []string
	OutputEnhancements     []string
	ExpertRoles            []string
}

// TaskPattern is the detector for one task type.
type TaskPattern struct {
	Type          TaskType
	Patterns      []*regexp.Regexp
	Confidence    float64
	ExpertRoles   []string
	ExpansionHint string
}

// Lexicon groups the word lists used by scoring and rewriting.
type Lexicon struct {
	Filler            *regexp.Regexp
	Vague             *regexp.Regexp
	VagueReplacements map[string]string
	Quality           *regexp.Regexp
	FormatCue         *regexp.Regexp
	Urgency           *regexp.Regexp
	Imperatives       map[string]bool
}

// Catalog is the complete, read-only rule set.
type Catalog struct {
	Platforms             map[types.Platform]PlatformRules
	Styles                map[types.Style]StyleRules
	Tasks                 []TaskPattern
	RolePrefixes          map[string]string
	OutputSections        map[TaskType][]string
	LengthConstraints     map[string]string
	ComplexityConstraints map[string]string
	UrgencyConstraints    map[string]string
	StyleConstraints      map[types.Style]string
	Lexicon               Lexicon
}

// Platform returns the rules for p. PlatformNone and unknown ids report false.
func (c *Catalog) Platform(p types.Platform) (PlatformRules, bool) {
	r, ok := c.Platforms[p]
	return r, ok
}

// Style returns the rules for s, falling back to the professional register.
func (c *Catalog) Style(s types.Style) StyleRules {
	if r, ok := c.Styles[s]; ok {
		return r
	}
	return c.Styles[types.StyleProfessional]
}

// Task returns the detector for t.
func (c *Catalog) Task(t TaskType) (TaskPattern, bool) {
	for _, tp := range c.Tasks {
		if tp.Type == t {
			return tp, true
		}
	}
	return TaskPattern{}, false
}

// DetectTaskType scores every task type as matched/total patterns scaled by
// the type's confidence and returns the best one above MinTaskConfidence.
// Ties keep the type declared first.
func (c *Catalog) DetectTaskType(text string) (TaskType, float64) {
	best, bestConf := TaskNone, 0.0
	for _, tp := range c.Tasks {
		if len(tp.Patterns) == 0 {
			continue
		}
		matched := 0
		for _, p := range tp.Patterns {
			if p.MatchString(text) {
				matched++
			}
		}
		conf := float64(matched) / float64(len(tp.Patterns)) * tp.Confidence
		if conf > MinTaskConfidence && conf > bestConf {
			best, bestConf = tp.Type, conf
		}
	}
	return best, bestConf
}

// GetExpertRole picks the first role in the style's list that the task also
// lists, or the style's first role when they share none.
func (c *Catalog) GetExpertRole(task TaskType, style types.Style) string {
	sr := c.Style(style)
	if tp, ok := c.Task(task); ok {
		for _, role := range sr.ExpertRoles {
			for _, tr := range tp.ExpertRoles {
				if role == tr {
					return role
				}
			}
		}
	}
	if len(sr.ExpertRoles) > 0 {
		return sr.ExpertRoles[0]
	}
	return ""
}

// RolePrefix returns the opening sentence for an expert role.
func (c *Catalog) RolePrefix(role string) string {
	if p, ok := c.RolePrefixes[role]; ok {
		return p
	}
	if role == "" {
		return ""
	}
	return fmt.Sprintf("You are an experienced %s.", strings.ReplaceAll(role, "-", " "))
}

// ComplexityConstraint maps a 0-100 complexity score onto the complexity table.
func (c *Catalog) ComplexityConstraint(score int) string {
	switch {
	case score >= 50:
		return c.ComplexityConstraints["complex"]
	case score >= 20:
		return c.ComplexityConstraints["moderate"]
	default:
		return c.ComplexityConstraints["simple"]
	}
}

// GenerateConstraints derives natural-language constraints from the prompt's
// length, the platform's preferred length and the style.
func (c *Catalog) GenerateConstraints(text string, style types.Style, platform types.Platform) []string {
	wc := len(strings.Fields(text))
	var out []string

	switch {
	case wc < 15:
		out = append(out, c.LengthConstraints["short"])
	case wc > 150:
		out = append(out, c.LengthConstraints["long"])
	default:
		out = append(out, c.LengthConstraints["medium"])
	}

	if pr, ok := c.Platform(platform); ok && pr.MaxOptimalLength > 0 {
		if wc > pr.MaxOptimalLength {
			out = append(out, fmt.Sprintf("Prioritize the essentials first; %s works best with requests under %d words.", pr.Name, pr.MaxOptimalLength))
		} else {
			out = append(out, fmt.Sprintf("Keep the answer focused and suited to %s.", pr.Name))
		}
	}

	if c.Lexicon.Urgency != nil && c.Lexicon.Urgency.MatchString(text) {
		out = append(out, c.UrgencyConstraints["urgent"])
	}

	if phrase, ok := c.StyleConstraints[style]; ok && phrase != "" {
		out = append(out, phrase)
	}
	return out
}
