// Package suggest builds suggestion bundles for a prompt and rewrites the
// prompt by applying them in a fixed stage order.
package suggest

import (
	"fmt"
	"strings"

	"github.com/teilomillet/promptlift/rules"
	"github.com/teilomillet/promptlift/scorer"
	"github.com/teilomillet/promptlift/types"
	"github.com/teilomillet/promptlift/utils"
)

// MaxImmediate caps the immediate suggestions in a bundle.
const MaxImmediate = 3

// Score thresholds that trigger enhancement and structure templates.
const (
	enhancementThreshold = 70
	structureThreshold   = 60
)

// Word-count and complexity triggers.
const (
	shortPromptWords    = 10
	formatCueWords      = 30
	examplesWords       = 40
	longParagraphWords  = 60
	highComplexityScore = 50
)

// Suggestion types.
const (
	TypeLength         = "length"
	TypeClarity        = "clarity"
	TypeIntent         = "intent"
	TypeFormat         = "format"
	TypeParagraphSplit = "paragraph-split"
	TypeComplexity     = "complexity"
	TypeExamples       = "examples"
	TypeRole           = "role"
	TypeConstraints    = "constraints"
	TypeOutput         = "output-structure"
	TypeQuality        = "quality"
	TypePlatform       = "platform"
	TypeStyle          = "style"
)

// Options selects what the generator produces.
type Options struct {
	Level    types.Level
	Platform types.Platform
	Style    types.Style
}

// Generator produces suggestion bundles and rewritten prompts.
type Generator struct {
	catalog *rules.Catalog
	library *Library
	logger  utils.Logger
}

// Option configures a Generator.
type Option func(*Generator)

func WithCatalog(c *rules.Catalog) Option {
	return func(g *Generator) { g.catalog = c }
}

func WithLibrary(l *Library) Option {
	return func(g *Generator) { g.library = l }
}

func WithLogger(l utils.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates a Generator over the default catalog and template library.
func New(opts ...Option) *Generator {
	g := &Generator{
		catalog: rules.Default(),
		library: DefaultLibrary(),
		logger:  utils.NewLogger(utils.LogLevelWarn),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateSuggestions builds the full bundle. report may be nil, in which case
// criterion scores are approximated from the analysis flags.
func (g *Generator) GenerateSuggestions(text string, analysis types.AnalysisResult, report *scorer.QualityReport, opts Options) types.SuggestionBundle {
	return types.SuggestionBundle{
		Immediate:        g.ImmediateSuggestions(text, analysis),
		Structural:       g.structural(analysis),
		Enhancement:      g.enhancement(text, analysis, report, opts),
		PlatformSpecific: g.PlatformSuggestions(text, opts.Platform),
		Templates:        g.templates(text, analysis, report),
	}
}

// ImmediateSuggestions returns at most MaxImmediate quick fixes in a fixed
// order: length, clarity, intent, format.
func (g *Generator) ImmediateSuggestions(text string, analysis types.AnalysisResult) []types.Suggestion {
	var out []types.Suggestion
	lex := g.catalog.Lexicon

	if analysis.WordCount < shortPromptWords {
		out = append(out, types.Suggestion{
			Type:       TypeLength,
			Priority:   types.PriorityHigh,
			Issue:      "The prompt is too short to give the model enough to work with.",
			Suggestion: "Add details about the topic, the audience and the result you expect.",
			Example: types.Example{
				Before: "write a story",
				After:  "Write a 500-word adventure story for middle-school readers about a lost dragon, in a warm and humorous tone.",
			},
		})
	}

	if m := lex.Vague.FindString(text); m != "" {
		out = append(out, types.Suggestion{
			Type:       TypeClarity,
			Priority:   types.PriorityMedium,
			Issue:      fmt.Sprintf("Vague words such as %q weaken the request.", m),
			Suggestion: "Replace vague words with concrete, measurable descriptions.",
			Example: types.Example{
				Before: "Make a good presentation about stuff in our market.",
				After:  "Make a 10-slide presentation on the three biggest trends in our market.",
			},
		})
	}

	if analysis.WordCount > 0 && !analysis.HasQuestions && !scorer.StartsWithImperative(g.StripFiller(text), g.catalog) {
		out = append(out, types.Suggestion{
			Type:       TypeIntent,
			Priority:   types.PriorityMedium,
			Issue:      "The prompt does not make a clear request.",
			Suggestion: "Start with an action verb or phrase the prompt as a question.",
			Example: types.Example{
				Before: "Marketing ideas for my bakery",
				After:  "Suggest five marketing ideas for my bakery.",
			},
		})
	}

	if analysis.WordCount > formatCueWords && !lex.FormatCue.MatchString(text) {
		out = append(out, types.Suggestion{
			Type:       TypeFormat,
			Priority:   types.PriorityLow,
			Issue:      "A long prompt with no requested output format.",
			Suggestion: "Say how the answer should be formatted, for example a list, a table or sections.",
			Example: types.Example{
				Before: "Tell me about the history of the company and its products and markets...",
				After:  "...Format the answer as a timeline followed by a bullet list of products.",
			},
		})
	}

	if len(out) > MaxImmediate {
		out = out[:MaxImmediate]
	}
	return out
}

func (g *Generator) structural(analysis types.AnalysisResult) []types.Suggestion {
	var out []types.Suggestion
	if analysis.WordCount > longParagraphWords && analysis.ParagraphCount <= 1 {
		out = append(out, types.Suggestion{
			Type:       TypeParagraphSplit,
			Priority:   types.PriorityMedium,
			Issue:      "Everything is in one long paragraph.",
			Suggestion: "Separate the background from the actual request.",
			Template:   "Background:\n[context]\n\nTask:\n[request]",
		})
	}
	if analysis.ComplexityIndicators.ComplexityScore > highComplexityScore {
		out = append(out, types.Suggestion{
			Type:       TypeComplexity,
			Priority:   types.PriorityMedium,
			Issue:      "The request is complex.",
			Suggestion: "Ask for the work to be broken into numbered steps.",
			Template:   "Work through this in numbered steps:\n1. [first step]\n2. [second step]\n3. [third step]",
		})
	}
	if analysis.WordCount > examplesWords && !analysis.HasExamples {
		out = append(out, types.Suggestion{
			Type:       TypeExamples,
			Priority:   types.PriorityLow,
			Issue:      "A detailed request with no example.",
			Suggestion: "Show an example of the output you want.",
			Template:   "For example: [a short sample of the desired output]",
		})
	}
	return out
}

func (g *Generator) enhancement(text string, analysis types.AnalysisResult, report *scorer.QualityReport, opts Options) []types.Suggestion {
	contextLow := !analysis.HasContext
	specificityLow := !analysis.HasConstraints
	if report != nil {
		contextLow = report.Score(scorer.Context) < enhancementThreshold
		specificityLow = report.Score(scorer.Specificity) < enhancementThreshold
	}
	qualityMissing := !g.catalog.Lexicon.Quality.MatchString(text)
	if !contextLow && !specificityLow && !qualityMissing {
		return nil
	}

	task, _ := g.catalog.DetectTaskType(text)
	role := g.catalog.GetExpertRole(task, opts.Style)
	out := []types.Suggestion{{
		Type:       TypeRole,
		Priority:   types.PriorityMedium,
		Issue:      "The model is not told what expertise to bring.",
		Suggestion: "Open with an expert role suited to the task.",
		Template:   g.catalog.RolePrefix(role),
	}}
	if specificityLow {
		out = append(out, types.Suggestion{
			Type:       TypeConstraints,
			Priority:   types.PriorityMedium,
			Issue:      "The request has few explicit requirements.",
			Suggestion: "List the requirements the answer must meet.",
			Template:   "Requirements:\n- [requirement]\n- [requirement]",
		})
	}
	if contextLow && len(g.catalog.OutputSections[task]) > 0 {
		out = append(out, types.Suggestion{
			Type:       TypeOutput,
			Priority:   types.PriorityLow,
			Issue:      "The expected shape of the answer is not described.",
			Suggestion: "Name the sections the answer should contain.",
		})
	}
	if qualityMissing {
		out = append(out, types.Suggestion{
			Type:       TypeQuality,
			Priority:   types.PriorityLow,
			Issue:      "No quality expectations are stated.",
			Suggestion: "Ask for an accurate, specific and well-structured answer.",
		})
	}
	sr := g.catalog.Style(opts.Style)
	if guide := styleGuidelines(sr); guide != "" {
		issue := "The prompt does not set a writing style."
		if len(sr.Characteristics) > 0 {
			issue = fmt.Sprintf("The prompt does not ask for a %s answer.", joinList(sr.Characteristics))
		}
		out = append(out, types.Suggestion{
			Type:       TypeStyle,
			Priority:   types.PriorityLow,
			Issue:      issue,
			Suggestion: "Add style guidelines for the chosen register.",
			Template:   guide,
		})
	}
	return out
}

// styleGuidelines lists a style's prefix, structural, language and output
// enhancements as one block, or returns "" when the style defines none.
func styleGuidelines(sr rules.StyleRules) string {
	var lines []string
	for _, group := range [][]string{sr.PrefixEnhancements, sr.StructuralEnhancements, sr.LanguageEnhancements, sr.OutputEnhancements} {
		lines = append(lines, nonEmpty(group)...)
	}
	if len(lines) == 0 {
		return ""
	}
	return "Style guidelines:\n- " + strings.Join(lines, "\n- ")
}

// PlatformSuggestions returns advice for platform: the dedicated check for
// chatgpt, claude, gemini and perplexity or a layout hint for the others,
// followed by a warning for every avoid-pattern the text hits. PlatformNone
// and unknown platforms get none.
func (g *Generator) PlatformSuggestions(text string, platform types.Platform) []types.Suggestion {
	pr, ok := g.catalog.Platform(platform)
	if !ok {
		return nil
	}
	var out []types.Suggestion
	if s, ok := g.platformSuggestion(text, pr); ok {
		out = append(out, s)
	}
	return append(out, avoidSuggestions(text, pr)...)
}

func (g *Generator) platformSuggestion(text string, pr rules.PlatformRules) (types.Suggestion, bool) {
	advice := layoutAdvice(pr)
	switch pr.ID {
	case types.PlatformChatGPT:
		if stepByStep.MatchString(text) {
			return types.Suggestion{}, false
		}
		return types.Suggestion{
			Type:       TypePlatform,
			Priority:   types.PriorityMedium,
			Issue:      pr.Name + " reasons better when asked to work step by step.",
			Suggestion: joinSentence("Ask it to think through the problem step by step.", advice),
			Example:    types.Example{Before: "Solve this puzzle.", After: "Solve this puzzle. Think through the problem step by step."},
		}, true
	case types.PlatformClaude:
		if xmlTag.MatchString(text) {
			return types.Suggestion{}, false
		}
		return types.Suggestion{
			Type:       TypePlatform,
			Priority:   types.PriorityMedium,
			Issue:      pr.Name + " follows instructions best when inputs are delimited.",
			Suggestion: joinSentence("Wrap the task and any input text in XML-style tags.", advice),
			Example:    types.Example{Before: "Summarize this report: ...", After: "<task>Summarize the report.</task>\n<report>...</report>"},
		}, true
	case types.PlatformGemini:
		if g.catalog.Lexicon.FormatCue.MatchString(text) {
			return types.Suggestion{}, false
		}
		return types.Suggestion{
			Type:       TypePlatform,
			Priority:   types.PriorityLow,
			Issue:      pr.Name + " gives its best structured answers when asked for them.",
			Suggestion: joinSentence("Ask for headings, bullet points or a table.", advice),
			Example:    types.Example{Before: "Tell me about solar panels.", After: "Tell me about solar panels. Use a table comparing cost and efficiency."},
		}, true
	case types.PlatformPerplexity:
		if citeSources.MatchString(text) {
			return types.Suggestion{}, false
		}
		return types.Suggestion{
			Type:       TypePlatform,
			Priority:   types.PriorityMedium,
			Issue:      pr.Name + " is a search engine and can cite what it finds.",
			Suggestion: joinSentence("Ask for sources and recent information.", advice),
			Example:    types.Example{Before: "Latest battery research", After: "What are the latest advances in battery research? Cite your sources."},
		}, true
	}

	for _, p := range pr.OptimizationPatterns {
		if p.MatchString(text) {
			return types.Suggestion{}, false
		}
	}
	if advice == "" {
		return types.Suggestion{}, false
	}
	issue := pr.Name + " works best with a clear layout."
	if len(pr.Strengths) > 0 && pr.PreferredStructure != "" {
		issue = fmt.Sprintf("%s is strongest at %s and expects %s.", pr.Name, joinList(pr.Strengths), pr.PreferredStructure)
	}
	return types.Suggestion{
		Type:       TypePlatform,
		Priority:   types.PriorityLow,
		Issue:      issue,
		Suggestion: advice,
	}, true
}

// avoidSuggestions flags phrasing that the platform handles badly, one
// suggestion per matching pattern.
func avoidSuggestions(text string, pr rules.PlatformRules) []types.Suggestion {
	var out []types.Suggestion
	for _, p := range pr.AvoidPatterns {
		m := p.FindString(text)
		if m == "" {
			continue
		}
		issue := fmt.Sprintf("%q tends to backfire on %s.", m, pr.Name)
		if len(pr.Weaknesses) > 0 {
			issue = fmt.Sprintf("%q tends to backfire on %s, which is weak at %s.", m, pr.Name, joinList(pr.Weaknesses))
		}
		suggestion := fmt.Sprintf("Remove %q.", m)
		if len(pr.Strengths) > 0 {
			suggestion = fmt.Sprintf("Remove %q and play to what %s does well: %s.", m, pr.Name, joinList(pr.Strengths))
		}
		out = append(out, types.Suggestion{
			Type:       TypePlatform,
			Priority:   types.PriorityHigh,
			Issue:      issue,
			Suggestion: suggestion,
		})
	}
	return out
}

func layoutAdvice(pr rules.PlatformRules) string {
	rs := make([]string, 0, len(pr.PrefixRules)+len(pr.StructureRules))
	rs = append(rs, pr.PrefixRules...)
	rs = append(rs, pr.StructureRules...)
	return strings.Join(rs, " ")
}

// joinList renders "a", "a and b" or "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

func (g *Generator) templates(text string, analysis types.AnalysisResult, report *scorer.QualityReport) []types.TemplateSuggestion {
	needsStructure := !analysis.HasStructure
	if report != nil {
		needsStructure = report.Score(scorer.Structure) < structureThreshold
	}
	var out []types.TemplateSuggestion
	for _, pt := range g.library.Select(text, needsStructure) {
		ts, err := render(pt, text)
		if err != nil {
			g.logger.Warn("Failed to render template", "template", pt.Name, "error", err)
			continue
		}
		out = append(out, ts)
	}
	return out
}
