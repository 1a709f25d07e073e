package suggest

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/teilomillet/promptlift/types"
)

var (
	stepByStep  = regexp.MustCompile(`(?i)step[- ]by[- ]step`)
	xmlTag      = regexp.MustCompile(`<[a-zA-Z_][\w-]*>`)
	citeSources = regexp.MustCompile(`(?i)\b(cite|sources?|references?)\b`)

	commaRun         = regexp.MustCompile(`\s*,(\s*,)+`)
	commaBeforeStop  = regexp.MustCompile(`,\s*([.!?])`)
	spaceRun         = regexp.MustCompile(`[ \t]+`)
	spaceBeforePunct = regexp.MustCompile(`[ \t]+([,.;!?])(\s|$)`)
	leadingJunk      = regexp.MustCompile(`^[\s,;:]+`)
	trailingJunk     = regexp.MustCompile(`[\s,;:]+$`)
	sentenceEnd      = regexp.MustCompile(`[.!?]+\s+`)
)

const (
	intentPrefix    = "Help me with the following request: "
	genericHint     = "Provide a detailed, well-organized response that covers the topic from several angles."
	formatSentence  = "Format the response with clear headings or bullet points."
	stepsBlock      = "Work through this in numbered steps:\n1. Restate the key requirements.\n2. Address each part in order.\n3. Summarize the result and any open questions."
	exampleSentence = "Illustrate the answer with a concrete example, such as a short sample of the expected output."
	qualitySentence = "Make the response accurate, specific and well-structured."
)

// GenerateOptimizedPrompt rewrites text in a fixed stage order: immediate
// fixes always, structural fixes unless the level is basic, enhancements at
// expert level only, and platform adjustments when a platform is set. Each
// stage consumes the previous stage's output. The result is not a fixed
// point: rewriting it again may change it further.
func (g *Generator) GenerateOptimizedPrompt(text string, analysis types.AnalysisResult, bundle types.SuggestionBundle, opts Options) string {
	out := g.applyImmediate(text, bundle.Immediate)
	if opts.Level != types.LevelBasic {
		out = g.applyStructural(out, bundle.Structural)
	}
	if opts.Level == types.LevelExpert {
		out = g.applyEnhancement(out, text, analysis, bundle.Enhancement, opts)
	}
	if opts.Platform != types.PlatformNone {
		out = g.applyPlatform(out, opts.Platform)
	}
	return out
}

func (g *Generator) applyImmediate(text string, immediate []types.Suggestion) string {
	cleaned := g.ReplaceVague(g.StripFiller(text))
	if !hasLetter(cleaned) {
		cleaned = text
	}
	out := finish(cleaned)
	if types.Has(immediate, TypeIntent) {
		out = intentPrefix + out
	}
	if types.Has(immediate, TypeLength) {
		out = joinSentence(out, g.expansionHint(text))
	}
	if types.Has(immediate, TypeFormat) {
		out = joinSentence(out, formatSentence)
	}
	return out
}

func (g *Generator) applyStructural(text string, structural []types.Suggestion) string {
	out := text
	if types.Has(structural, TypeParagraphSplit) {
		out = splitBackground(out)
	}
	if types.Has(structural, TypeComplexity) {
		out = appendBlock(out, stepsBlock)
	}
	if types.Has(structural, TypeExamples) {
		out = appendBlock(out, exampleSentence)
	}
	return out
}

func (g *Generator) applyEnhancement(text, original string, analysis types.AnalysisResult, enhancement []types.Suggestion, opts Options) string {
	out := text
	task, _ := g.catalog.DetectTaskType(original)

	for _, s := range enhancement {
		switch s.Type {
		case TypeRole:
			if s.Template != "" && !strings.HasPrefix(out, "You are") {
				out = s.Template + "\n\n" + out
			}
		case TypeConstraints:
			reqs := g.catalog.GenerateConstraints(original, opts.Style, opts.Platform)
			if c := g.catalog.ComplexityConstraint(analysis.ComplexityIndicators.ComplexityScore); c != "" {
				reqs = append(reqs, c)
			}
			out = appendBlock(out, "Requirements:\n- "+strings.Join(nonEmpty(reqs), "\n- "))
		case TypeOutput:
			sections := g.catalog.OutputSections[task]
			if len(sections) == 0 {
				continue
			}
			var b strings.Builder
			b.WriteString("Structure your response with these sections:")
			for i, sec := range sections {
				fmt.Fprintf(&b, "\n%d. %s", i+1, sec)
			}
			out = appendBlock(out, b.String())
		case TypeQuality:
			out = appendBlock(out, qualitySentence)
		case TypeStyle:
			if !strings.Contains(out, s.Template) {
				out = appendBlock(out, s.Template)
			}
		}
	}
	return out
}

func (g *Generator) applyPlatform(text string, platform types.Platform) string {
	pr, ok := g.catalog.Platform(platform)
	if !ok {
		return text
	}
	switch platform {
	case types.PlatformClaude:
		out := "<task>\n" + text + "\n</task>"
		return appendBlock(out, strings.Join(pr.SuffixRules, " "))
	case types.PlatformChatGPT, types.PlatformGemini, types.PlatformPerplexity,
		types.PlatformCopilot, types.PlatformPoe, types.PlatformCharacterAI:
		var missing []string
		for _, rule := range pr.SuffixRules {
			if !strings.Contains(text, rule) {
				missing = append(missing, rule)
			}
		}
		if len(missing) == 0 {
			return text
		}
		return appendBlock(text, strings.Join(missing, " "))
	default:
		return text
	}
}

// StripFiller removes filler words and tidies the punctuation left behind.
// "like" is only treated as filler when set off by commas or leading the
// text, so "I would like" and "tools like Docker" survive.
func (g *Generator) StripFiller(text string) string {
	locs := g.catalog.Lexicon.Filler.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		if strings.EqualFold(text[loc[0]:loc[1]], "like") && !isInterjection(text[:loc[0]], text[loc[1]:]) {
			continue
		}
		b.WriteString(text[last:loc[0]])
		last = loc[1]
	}
	b.WriteString(text[last:])
	return tidy(b.String())
}

func isInterjection(before, after string) bool {
	prev := strings.TrimSpace(before)
	return prev == "" || strings.HasSuffix(prev, ",") || strings.HasPrefix(strings.TrimSpace(after), ",")
}

// ReplaceVague swaps vague words for concrete ones, dropping pure
// intensifiers. Capitalization of the replaced word is kept.
func (g *Generator) ReplaceVague(text string) string {
	lex := g.catalog.Lexicon
	out := lex.Vague.ReplaceAllStringFunc(text, func(m string) string {
		word := strings.TrimSuffix(m, ".")
		suffix := m[len(word):]
		rep, ok := lex.VagueReplacements[strings.ToLower(word)]
		if !ok {
			return suffix
		}
		return matchCase(word, rep) + suffix
	})
	return tidy(out)
}

func (g *Generator) expansionHint(text string) string {
	task, _ := g.catalog.DetectTaskType(text)
	if tp, ok := g.catalog.Task(task); ok && tp.ExpansionHint != "" {
		return tp.ExpansionHint
	}
	return genericHint
}

func tidy(s string) string {
	s = commaRun.ReplaceAllString(s, ",")
	s = commaBeforeStop.ReplaceAllString(s, "$1")
	s = spaceRun.ReplaceAllString(s, " ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1$2")
	s = leadingJunk.ReplaceAllString(s, "")
	s = trailingJunk.ReplaceAllString(s, "")
	return s
}

// finish capitalizes the first letter and ensures terminal punctuation.
func finish(s string) string {
	s = tidy(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if unicode.IsLower(r) {
		s = string(unicode.ToUpper(r)) + s[size:]
	}
	last, _ := utf8.DecodeLastRuneInString(s)
	if unicode.IsLetter(last) || unicode.IsDigit(last) || last == ')' || last == '"' || last == '\'' {
		s += "."
	}
	return s
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

func matchCase(original, replacement string) string {
	r, _ := utf8.DecodeRuneInString(original)
	if !unicode.IsUpper(r) || replacement == "" {
		return replacement
	}
	rr, size := utf8.DecodeRuneInString(replacement)
	return string(unicode.ToUpper(rr)) + replacement[size:]
}

func joinSentence(text, sentence string) string {
	if text == "" {
		return sentence
	}
	return text + " " + sentence
}

func appendBlock(text, block string) string {
	if block == "" {
		return text
	}
	if text == "" {
		return block
	}
	return text + "\n\n" + block
}

// splitBackground moves the first sentence under a Background header and the
// rest under Task. Text with a single sentence is returned unchanged.
func splitBackground(text string) string {
	loc := sentenceEnd.FindStringIndex(text)
	if loc == nil || loc[1] >= len(text) {
		return text
	}
	background := strings.TrimSpace(text[:loc[1]])
	task := strings.TrimSpace(text[loc[1]:])
	return "Background:\n" + background + "\n\nTask:\n" + task
}

func nonEmpty(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
