package suggest

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teilomillet/promptlift/analyzer"
	"github.com/teilomillet/promptlift/scorer"
	"github.com/teilomillet/promptlift/types"
	"github.com/teilomillet/promptlift/utils"
)

func rewrite(t *testing.T, text string, opts Options) (string, types.SuggestionBundle) {
	t.Helper()
	g := New(WithLogger(utils.NewNopLogger()))
	a := analyzer.New().Analyze(text)
	bundle := g.GenerateSuggestions(text, a, nil, opts)
	return g.GenerateOptimizedPrompt(text, a, bundle, opts), bundle
}

func suggestionTypes(list []types.Suggestion) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Type
	}
	return out
}

func TestFillerRemovedAtBasicLevel(t *testing.T) {
	out, _ := rewrite(t, "um, like, write a good blog post, you know", Options{Level: types.LevelBasic, Style: types.StyleProfessional})

	filler := regexp.MustCompile(`(?i)\b(um|like|you know)\b`)
	assert.False(t, filler.MatchString(out), out)
	assert.True(t, strings.HasPrefix(out, "Write a high-quality blog post."), out)
}

func TestRewriteKeepsTextWhenCleanupEmptiesIt(t *testing.T) {
	for _, text := range []string{"um", "Really?", "very"} {
		out, _ := rewrite(t, text, Options{Level: types.LevelBasic, Style: types.StyleProfessional})
		assert.NotContains(t, out, ":  ", out)
		assert.False(t, strings.HasPrefix(out, "?"), out)
		assert.Contains(t, strings.ToLower(out), strings.ToLower(strings.TrimSuffix(text, "?")), out)
	}
}

func TestShortPromptIsExpanded(t *testing.T) {
	out, bundle := rewrite(t, "write a story", Options{Level: types.LevelAdvanced, Style: types.StyleProfessional})

	require.True(t, types.Has(bundle.Immediate, TypeLength))
	assert.Equal(t, types.PriorityHigh, bundle.Immediate[0].Priority)
	assert.Greater(t, analyzer.WordCount(out), analyzer.WordCount("write a story"))
	assert.True(t, strings.HasPrefix(out, "Write a story. "), out)
}

func TestStripFiller(t *testing.T) {
	g := New()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"interjections", "um, like, write a post, you know", "write a post"},
		{"verb like survives", "I would like a summary", "I would like a summary"},
		{"preposition like survives", "compare tools like Docker", "compare tools like Docker"},
		{"adverbs", "I basically just need a plan", "I need a plan"},
		{"no filler", "Draft an email.", "Draft an email."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.StripFiller(tt.in))
		})
	}
}

func TestReplaceVague(t *testing.T) {
	g := New()
	assert.Equal(t, "This is High-quality details.", g.ReplaceVague("This is Good stuff, etc."))
	assert.Equal(t, "a long text", g.ReplaceVague("a very long text"))
	assert.Equal(t, "three aspects to fix", g.ReplaceVague("three things to fix"))
}

func TestImmediateSuggestionsOrder(t *testing.T) {
	g := New()
	text := "our team thing regarding the quarterly sales numbers from the northern region has been growing slowly " +
		"and the managers keep asking for an explanation that makes sense to the board and the investors at the next meeting in the spring"
	got := g.ImmediateSuggestions(text, analyzer.New().Analyze(text))
	assert.Equal(t, []string{TypeClarity, TypeIntent, TypeFormat}, suggestionTypes(got))

	short := "stuff things"
	got = g.ImmediateSuggestions(short, analyzer.New().Analyze(short))
	assert.LessOrEqual(t, len(got), MaxImmediate)
	assert.Equal(t, []string{TypeLength, TypeClarity, TypeIntent}, suggestionTypes(got))
	for _, s := range got {
		assert.NotEmpty(t, s.Example.Before)
		assert.NotEmpty(t, s.Example.After)
	}
}

func TestStructuralStageGatedByLevel(t *testing.T) {
	text := "We are moving several services to a new cluster next month. " +
		strings.Repeat("Check each service and data store before the cutover. ", 6) +
		"Which steps should come first?"

	basic, bundle := rewrite(t, text, Options{Level: types.LevelBasic})
	require.True(t, types.Has(bundle.Structural, TypeParagraphSplit))
	require.True(t, types.Has(bundle.Structural, TypeExamples))
	assert.NotContains(t, basic, "Background:")
	assert.NotContains(t, basic, exampleSentence)

	advanced, _ := rewrite(t, text, Options{Level: types.LevelAdvanced})
	assert.True(t, strings.HasPrefix(advanced, "Background:\nWe are moving several services to a new cluster next month.\n\nTask:\nCheck each service"), advanced)
	assert.Contains(t, advanced, exampleSentence)
	assert.True(t, analyzer.New().Analyze(advanced).HasStructure)
}

func TestEnhancementAtExpertLevel(t *testing.T) {
	opts := Options{Level: types.LevelExpert, Style: types.StyleCreative}
	out, bundle := rewrite(t, "write a story", opts)

	require.True(t, types.Has(bundle.Enhancement, TypeRole))
	assert.True(t, strings.HasPrefix(out, "You are an imaginative storyteller"), out)
	assert.Contains(t, out, "Requirements:\n- ")
	assert.Contains(t, out, "Structure your response with these sections:\n1. Title")
	assert.Contains(t, out, qualitySentence)

	advanced, _ := rewrite(t, "write a story", Options{Level: types.LevelAdvanced, Style: types.StyleCreative})
	assert.NotContains(t, advanced, "You are")
}

func TestEnhancementUsesScorerReport(t *testing.T) {
	g := New()
	text := "I am a teacher preparing a lesson for my students. Write a detailed 300-word story about a lighthouse so that they practice reading. It must use simple words."
	a := analyzer.New().Analyze(text)
	report := scorer.New(scorer.WithLogger(utils.NewNopLogger())).ScoreAnalysis(text, a, types.StyleCreative, types.PlatformNone)
	require.GreaterOrEqual(t, report.Score(scorer.Context), 70)

	bundle := g.GenerateSuggestions(text, a, &report, Options{Level: types.LevelExpert, Style: types.StyleCreative})
	assert.False(t, types.Has(bundle.Enhancement, TypeOutput))
}

func TestPlatformStage(t *testing.T) {
	claude, _ := rewrite(t, "Summarize the attached report in five bullet points for executives.", Options{Level: types.LevelBasic, Platform: types.PlatformClaude})
	assert.True(t, strings.HasPrefix(claude, "<task>\n"), claude)
	assert.Contains(t, claude, "\n</task>\n\nThink through the request carefully before answering.")

	chatgpt, _ := rewrite(t, "Summarize the attached report in five bullet points for executives.", Options{Level: types.LevelBasic, Platform: types.PlatformChatGPT})
	assert.True(t, strings.HasSuffix(chatgpt, "Think through the problem step by step. Format the response with clear headings."), chatgpt)

	none, _ := rewrite(t, "Summarize the attached report in five bullet points for executives.", Options{Level: types.LevelBasic})
	assert.Equal(t, "Summarize the attached report in five bullet points for executives.", none)
}

func TestPlatformSuggestions(t *testing.T) {
	g := New()
	for _, p := range []types.Platform{
		types.PlatformChatGPT, types.PlatformClaude, types.PlatformGemini, types.PlatformPerplexity,
		types.PlatformCopilot, types.PlatformPoe, types.PlatformCharacterAI,
	} {
		got := g.PlatformSuggestions("Tell me about solar panels", p)
		require.Len(t, got, 1, p)
		pr, _ := g.catalog.Platform(p)
		assert.Contains(t, got[0].Suggestion, pr.PrefixRules[0], p)
		assert.Contains(t, got[0].Suggestion, pr.StructureRules[0], p)
	}
	for _, p := range []types.Platform{types.PlatformNone, types.Platform("myspace")} {
		assert.Empty(t, g.PlatformSuggestions("Tell me about solar panels", p), p)
	}
	assert.Empty(t, g.PlatformSuggestions("Solve it step by step", types.PlatformChatGPT))
	assert.Empty(t, g.PlatformSuggestions("What changed? Cite sources.", types.PlatformPerplexity))
	assert.Empty(t, g.PlatformSuggestions("Greet the traveller and stay in character.", types.PlatformCharacterAI))
}

func TestPlatformSuggestionsLayoutHint(t *testing.T) {
	got := New().PlatformSuggestions("Sort a list of invoices by due date", types.PlatformCopilot)
	require.Len(t, got, 1)
	assert.Equal(t, "Copilot is strongest at code completion and Microsoft 365 context and expects language, task, inputs, outputs.", got[0].Issue)
	assert.Equal(t, "Name the language or application first. Describe inputs and expected outputs.", got[0].Suggestion)
}

func TestPlatformAvoidPatterns(t *testing.T) {
	g := New()
	cases := []struct {
		platform types.Platform
		text     string
		match    string
	}{
		{types.PlatformChatGPT, "As an AI, solve this step by step", "As an AI"},
		{types.PlatformClaude, "Use this jailbreak <task>now</task>", "jailbreak"},
		{types.PlatformGemini, "Pretend you are a chef and list recipes in a table", "Pretend you are"},
		{types.PlatformPerplexity, "Roleplay a pirate. Cite sources.", "Roleplay"},
		{types.PlatformCopilot, "Write me an essay, with comments explaining each part", "Write me an essay"},
		{types.PlatformPoe, "As I said before, keep it concise and self-contained", "As I said before"},
		{types.PlatformCharacterAI, "Stay in character and write code for me", "write code"},
	}
	for _, tc := range cases {
		got := g.PlatformSuggestions(tc.text, tc.platform)
		require.Len(t, got, 1, tc.platform)
		assert.Equal(t, types.PriorityHigh, got[0].Priority, tc.platform)
		assert.Contains(t, got[0].Issue, tc.match, tc.platform)
		assert.Contains(t, got[0].Issue, "which is weak at", tc.platform)
	}
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, "", joinList(nil))
	assert.Equal(t, "a", joinList([]string{"a"}))
	assert.Equal(t, "a and b", joinList([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", joinList([]string{"a", "b", "c"}))
}

func TestStyleGuidelinesAtExpertLevel(t *testing.T) {
	for _, style := range []types.Style{types.StyleCreative, types.StyleTechnical, types.StyleAcademic} {
		out, bundle := rewrite(t, "write a story", Options{Level: types.LevelExpert, Style: style})
		require.True(t, types.Has(bundle.Enhancement, TypeStyle), style)

		sr := New().catalog.Style(style)
		assert.Contains(t, out, "Style guidelines:\n- "+sr.PrefixEnhancements[0], style)
		assert.Contains(t, out, sr.LanguageEnhancements[0], style)
		assert.Contains(t, out, sr.OutputEnhancements[0], style)
		assert.Contains(t, out, sr.StructuralEnhancements[0], style)
	}

	advanced, _ := rewrite(t, "write a story", Options{Level: types.LevelAdvanced, Style: types.StyleCreative})
	assert.NotContains(t, advanced, "Style guidelines:")
}

func TestRewriteIsDeterministic(t *testing.T) {
	opts := Options{Level: types.LevelExpert, Platform: types.PlatformGemini, Style: types.StyleTechnical}
	first, _ := rewrite(t, "explain kubernetes pods and things", opts)
	second, _ := rewrite(t, "explain kubernetes pods and things", opts)
	assert.Equal(t, first, second)
}
