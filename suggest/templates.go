package suggest

import (
	"bytes"
	"regexp"
	"text/template"

	"github.com/teilomillet/promptlift/types"
)

// MaxTemplates is the most templates offered for one prompt.
const MaxTemplates = 3

// TemplateKey identifies a template in the library.
type TemplateKey struct {
	Category    string
	Subcategory string
}

// PromptTemplate is a reusable prompt skeleton rendered with text/template.
type PromptTemplate struct {
	Key         TemplateKey
	Name        string
	Description string
	Template    string
}

// NewPromptTemplate creates a PromptTemplate.
func NewPromptTemplate(category, subcategory, name, description, tmpl string) *PromptTemplate {
	return &PromptTemplate{
		Key:         TemplateKey{Category: category, Subcategory: subcategory},
		Name:        name,
		Description: description,
		Template:    tmpl,
	}
}

// Execute renders the template with the given data.
func (pt *PromptTemplate) Execute(data map[string]any) (string, error) {
	tmpl, err := template.New(pt.Name).Parse(pt.Template)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type intent struct {
	pattern *regexp.Regexp
	key     TemplateKey
}

// Library is a static template set with intent detectors.
type Library struct {
	templates map[TemplateKey]*PromptTemplate
	intents   []intent
	generic   TemplateKey
}

// Get looks up a template by key.
func (l *Library) Get(category, subcategory string) (*PromptTemplate, bool) {
	pt, ok := l.templates[TemplateKey{Category: category, Subcategory: subcategory}]
	return pt, ok
}

// Match returns the templates whose intent matches text, in declaration
// order, without duplicates and capped at limit.
func (l *Library) Match(text string, limit int) []*PromptTemplate {
	var out []*PromptTemplate
	seen := make(map[TemplateKey]bool)
	for _, in := range l.intents {
		if len(out) >= limit {
			break
		}
		if seen[in.key] || !in.pattern.MatchString(text) {
			continue
		}
		if pt, ok := l.templates[in.key]; ok {
			seen[in.key] = true
			out = append(out, pt)
		}
	}
	return out
}

// Generic returns the structured fallback template.
func (l *Library) Generic() *PromptTemplate {
	return l.templates[l.generic]
}

// Select picks the templates for a prompt. When needsStructure is set the
// generic structured template is always included, taking the last slot if
// the intent matches already fill the cap.
func (l *Library) Select(text string, needsStructure bool) []*PromptTemplate {
	matched := l.Match(text, MaxTemplates)
	if !needsStructure || l.Generic() == nil {
		return matched
	}
	if len(matched) >= MaxTemplates {
		matched = matched[:MaxTemplates-1]
	}
	return append(matched, l.Generic())
}

func render(pt *PromptTemplate, request string) (types.TemplateSuggestion, error) {
	body, err := pt.Execute(map[string]any{"Request": request})
	if err != nil {
		return types.TemplateSuggestion{}, err
	}
	return types.TemplateSuggestion{
		Category:    pt.Key.Category,
		Subcategory: pt.Key.Subcategory,
		Name:        pt.Name,
		Description: pt.Description,
		Template:    body,
	}, nil
}

// DefaultLibrary returns the built-in template library.
func DefaultLibrary() *Library {
	all := []*PromptTemplate{
		NewPromptTemplate("writing", "creative", "Creative Writing Brief",
			"Sets genre, audience and tone for a piece of fiction.",
			"Write a [genre] piece for [audience].\n\nPremise: {{.Request}}\nTone: [tone]\nLength: about [number] words\nMain characters: [names and one-line descriptions]"),
		NewPromptTemplate("writing", "article", "Article Outline",
			"Frames an article or blog post with audience and structure.",
			"Topic: {{.Request}}\nAudience: [who will read it]\nGoal: [what the reader should take away]\nLength: [number] words\nFormat: an introduction, [number] sections with headings, and a conclusion"),
		NewPromptTemplate("coding", "implementation", "Implementation Request",
			"Pins down language, interface and constraints for code.",
			"Language: [language and version]\nTask: {{.Request}}\nInputs: [types and examples]\nExpected output: [types and examples]\nConstraints: [performance, libraries, style]\nInclude tests for the main cases."),
		NewPromptTemplate("coding", "debugging", "Debugging Request",
			"Gives the model what it needs to find a bug.",
			"Problem: {{.Request}}\nExpected behavior: [what should happen]\nActual behavior: [what happens, with the exact error]\nCode:\n```\n[relevant code]\n```\nWhat I tried: [attempts so far]"),
		NewPromptTemplate("analysis", "comparison", "Comparison Matrix",
			"Compares options against explicit criteria.",
			"Compare the following: {{.Request}}\nCriteria: [criterion 1], [criterion 2], [criterion 3]\nPresent the result as a table, then recommend one option for [use case]."),
		NewPromptTemplate("planning", "project", "Project Plan",
			"Turns a goal into milestones with owners and dates.",
			"Goal: {{.Request}}\nDeadline: [date]\nResources: [people, budget, tools]\nProduce a step-by-step plan with milestones, owners and risks."),
		NewPromptTemplate("general", "structured", "Structured Request",
			"A general skeleton separating context, task and output.",
			"Context:\n[background and audience]\n\nTask:\n{{.Request}}\n\nRequirements:\n- [constraint]\n- [constraint]\n\nOutput format:\n[list, table, paragraphs, code]"),
	}

	lib := &Library{
		templates: make(map[TemplateKey]*PromptTemplate, len(all)),
		generic:   TemplateKey{Category: "general", Subcategory: "structured"},
		intents: []intent{
			{regexp.MustCompile(`(?i)\b(story|poem|fiction|tale|novel)\b`), TemplateKey{"writing", "creative"}},
			{regexp.MustCompile(`(?i)\b(write|draft|compose|article|blog)\b`), TemplateKey{"writing", "article"}},
			{regexp.MustCompile(`(?i)\b(code|function|script|program|implement|api)\b`), TemplateKey{"coding", "implementation"}},
			{regexp.MustCompile(`(?i)\b(bug|error|debug|exception|fix)\b`), TemplateKey{"coding", "debugging"}},
			{regexp.MustCompile(`(?i)\b(compare|comparison|versus|vs\.?|difference)\b`), TemplateKey{"analysis", "comparison"}},
			{regexp.MustCompile(`(?i)\b(plan|roadmap|schedule|milestones?)\b`), TemplateKey{"planning", "project"}},
		},
	}
	for _, pt := range all {
		lib.templates[pt.Key] = pt
	}
	return lib
}
