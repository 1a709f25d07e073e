package rules

import (
	"regexp"
	"sync"

	"github.com/teilomillet/promptlift/types"
)

var defaultCatalog = sync.OnceValue(buildDefault)

// Default returns the built-in catalog. Callers must treat it as read-only.
func Default() *Catalog {
	return defaultCatalog()
}

func re(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile("(?i)" + p)
	}
	return out
}

func buildDefault() *Catalog {
	return &Catalog{
		Platforms:             defaultPlatforms(),
		Styles:                defaultStyles(),
		Tasks:                 defaultTasks(),
		RolePrefixes:          defaultRolePrefixes,
		OutputSections:        defaultOutputSections,
		LengthConstraints:     defaultLengthConstraints,
		ComplexityConstraints: defaultComplexityConstraints,
		UrgencyConstraints:    defaultUrgencyConstraints,
		StyleConstraints:      defaultStyleConstraints,
		Lexicon:               defaultLexicon(),
	}
}

func defaultPlatforms() map[types.Platform]PlatformRules {
	return map[types.Platform]PlatformRules{
		types.PlatformChatGPT: {
			ID:                 types.PlatformChatGPT,
			Name:               "ChatGPT",
			Strengths:          []string{"conversational follow-up", "step-by-step reasoning", "code generation"},
			Weaknesses:         []string{"drifts on long multi-part requests", "verbose by default"},
			PrefixRules:        []string{"State the role you want it to take."},
			StructureRules:     []string{"Use numbered steps for multi-part tasks.", "Separate instructions from input text."},
			SuffixRules:        []string{"Think through the problem step by step.", "Format the response with clear headings."},
			AvoidPatterns:      re(`\bas an ai\b`, `\bdo anything now\b`),
			MaxOptimalLength:   300,
			PreferredStructure: "role, task, constraints, output format",
			OptimizationPatterns: re(
				`step[- ]by[- ]step`,
				`format the (response|answer)`,
			),
		},
		types.PlatformClaude: {
			ID:                 types.PlatformClaude,
			Name:               "Claude",
			Strengths:          []string{"long documents", "careful reasoning", "following detailed instructions"},
			Weaknesses:         []string{"may hedge on ambiguous requests"},
			PrefixRules:        []string{"Give background before the request."},
			StructureRules:     []string{"Wrap distinct inputs in XML-style tags."},
			SuffixRules:        []string{"Think through the request carefully before answering."},
			AvoidPatterns:      re(`\bjailbreak\b`),
			MaxOptimalLength:   500,
			PreferredStructure: "context, task in tags, output requirements",
			OptimizationPatterns: re(
				`<task>`,
				`think (carefully|through)`,
			),
		},
		types.PlatformGemini: {
			ID:                 types.PlatformGemini,
			Name:               "Gemini",
			Strengths:          []string{"multimodal input", "structured summaries", "current information"},
			Weaknesses:         []string{"short answers to open questions"},
			PrefixRules:        []string{"Lead with the goal."},
			StructureRules:     []string{"Ask for tables or bullet points explicitly."},
			SuffixRules:        []string{"Organize the answer with headings, bullet points, or a table where useful."},
			AvoidPatterns:      re(`\bpretend you are\b`),
			MaxOptimalLength:   300,
			PreferredStructure: "goal, details, requested format",
			OptimizationPatterns: re(
				`organi[sz]e the answer`,
				`\b(table|bullet points)\b`,
			),
		},
		types.PlatformPerplexity: {
			ID:                 types.PlatformPerplexity,
			Name:               "Perplexity",
			Strengths:          []string{"web search", "source citations", "recent events"},
			Weaknesses:         []string{"role play", "long creative writing"},
			PrefixRules:        []string{"Phrase the request as a research question."},
			StructureRules:     []string{"Keep a single focused question per prompt."},
			SuffixRules:        []string{"Cite your sources and prefer recent, authoritative information."},
			AvoidPatterns:      re(`\b(pretend|imagine you are|role ?play)\b`),
			MaxOptimalLength:   150,
			PreferredStructure: "focused question, scope, source requirements",
			OptimizationPatterns: re(
				`\bcite (your )?sources\b`,
				`\b(recent|authoritative)\b`,
			),
		},
		types.PlatformCopilot: {
			ID:                 types.PlatformCopilot,
			Name:               "Copilot",
			Strengths:          []string{"code completion", "Microsoft 365 context"},
			Weaknesses:         []string{"long open-ended essays"},
			PrefixRules:        []string{"Name the language or application first."},
			StructureRules:     []string{"Describe inputs and expected outputs."},
			SuffixRules:        []string{"Include brief comments explaining the key decisions."},
			MaxOptimalLength:   200,
			AvoidPatterns:      re(`\bwrite (me )?an? (long )?essay\b`),
			PreferredStructure: "language, task, inputs, outputs",
			OptimizationPatterns: re(
				`\bcomments? explaining\b`,
			),
		},
		types.PlatformPoe: {
			ID:                 types.PlatformPoe,
			Name:               "Poe",
			Strengths:          []string{"switching between bots", "quick answers"},
			Weaknesses:         []string{"context is not shared across bots"},
			PrefixRules:        []string{"Restate all needed context in each message."},
			StructureRules:     []string{"Keep each request self-contained."},
			SuffixRules:        []string{"Keep the answer concise and self-contained."},
			MaxOptimalLength:   300,
			AvoidPatterns:      re(`\bas (i|we) (said|mentioned) (before|earlier)\b`, `\b(the )?other bot\b`),
			PreferredStructure: "self-contained request",
			OptimizationPatterns: re(
				`\bconcise and self-contained\b`,
			),
		},
		types.PlatformCharacterAI: {
			ID:                 types.PlatformCharacterAI,
			Name:               "Character.AI",
			Strengths:          []string{"persona dialogue", "interactive fiction"},
			Weaknesses:         []string{"factual research", "long technical output"},
			PrefixRules:        []string{"Describe the persona and scene."},
			StructureRules:     []string{"Keep turns short and in character."},
			SuffixRules:        []string{"Stay in character and keep replies conversational."},
			AvoidPatterns:      re(`\bcite (your )?sources\b`, `\bwrite code\b`),
			MaxOptimalLength:   120,
			PreferredStructure: "persona, scene, first line",
			OptimizationPatterns: re(
				`\bstay in character\b`,
			),
		},
	}
}

func defaultStyles() map[types.Style]StyleRules {
	return map[types.Style]StyleRules{
		types.StyleProfessional: {
			Characteristics:        []string{"clear", "concise", "business-appropriate"},
			PrefixEnhancements:     []string{"Provide a professional, well-organized response."},
			StructuralEnhancements: []string{"Use headings and short paragraphs."},
			LanguageEnhancements:   []string{"Use precise, plain language."},
			OutputEnhancements:     []string{"End with clear recommendations or next steps."},
			ExpertRoles:            []string{"consultant", "project-manager", "data-analyst", "technical-writer"},
		},
		types.StyleCasual: {
			Characteristics:        []string{"friendly", "conversational", "approachable"},
			PrefixEnhancements:     []string{"Keep the tone friendly and relaxed."},
			StructuralEnhancements: []string{"Short paragraphs are fine."},
			LanguageEnhancements:   []string{"Avoid jargon."},
			OutputEnhancements:     []string{"Wrap up with a quick takeaway."},
			ExpertRoles:            []string{"teacher", "writer"},
		},
		types.StyleAcademic: {
			Characteristics:        []string{"rigorous", "evidence-based", "formal"},
			PrefixEnhancements:     []string{"Take a scholarly, evidence-based approach."},
			StructuralEnhancements: []string{"Organize as introduction, discussion and conclusion."},
			LanguageEnhancements:   []string{"Use formal academic language and define key terms."},
			OutputEnhancements:     []string{"Reference relevant theories or research where appropriate."},
			ExpertRoles:            []string{"researcher", "teacher", "data-analyst"},
		},
		types.StyleCreative: {
			Characteristics:        []string{"vivid", "original", "expressive"},
			PrefixEnhancements:     []string{"Be imaginative and original."},
			StructuralEnhancements: []string{"Give the piece a clear beginning, middle, and end."},
			LanguageEnhancements:   []string{"Use vivid sensory details."},
			OutputEnhancements:     []string{"Offer a title for the piece."},
			ExpertRoles:            []string{"storyteller", "writer", "editor"},
		},
		types.StyleTechnical: {
			Characteristics:        []string{"precise", "detailed", "accurate"},
			PrefixEnhancements:     []string{"Be technically precise."},
			StructuralEnhancements: []string{"Use numbered steps and code blocks where relevant."},
			LanguageEnhancements:   []string{"Use correct technical terminology."},
			OutputEnhancements:     []string{"Note assumptions, edge cases, and limitations."},
			ExpertRoles:            []string{"software-engineer", "technical-writer", "data-analyst"},
		},
	}
}

func defaultTasks() []TaskPattern {
	return []TaskPattern{
		{
			Type: TaskCreativeWriting,
			Patterns: re(
				`\b(write|compose|draft)\b`,
				`\b(story|poem|novel|fiction|tale|song|lyrics)\b`,
				`\b(character|plot|narrative|scene)\b`,
				`\b(creative|imaginative|fantasy)\b`,
				`\b(blog|article|essay|post)\b`,
			),
			Confidence:    0.9,
			ExpertRoles:   []string{"storyteller", "writer", "editor"},
			ExpansionHint: "Include a clear genre, tone and audience, and develop the main characters or subject in vivid detail.",
		},
		{
			Type: TaskCodeGeneration,
			Patterns: re(
				`\b(code|function|script|program|class|method)\b`,
				`\b(python|javascript|typescript|golang|java|rust|sql|bash)\b`,
				`\b(implement|refactor|debug|fix|compile)\b`,
				`\b(api|endpoint|database|algorithm)\b`,
				`\b(bug|error|exception|stack trace)\b`,
			),
			Confidence:    0.95,
			ExpertRoles:   []string{"software-engineer"},
			ExpansionHint: "Include the programming language, the expected inputs and outputs, and any error handling the code needs.",
		},
		{
			Type: TaskAnalysis,
			Patterns: re(
				`\b(analy[sz]e|analysis|evaluate|assess)\b`,
				`\b(data|metrics|trends?|statistics)\b`,
				`\b(insights?|patterns?|findings)\b`,
				`\b(why|cause|impact)\b`,
			),
			Confidence:    0.85,
			ExpertRoles:   []string{"data-analyst", "researcher", "consultant"},
			ExpansionHint: "Describe the key factors involved, support each conclusion with evidence, and end with clear takeaways.",
		},
		{
			Type: TaskExplanation,
			Patterns: re(
				`\b(explain|describe|clarify)\b`,
				`\b(what is|what are|how does|how do)\b`,
				`\b(understand|learn|concept)\b`,
				`\b(beginner|simple terms|eli5)\b`,
			),
			Confidence:    0.8,
			ExpertRoles:   []string{"teacher", "technical-writer", "researcher"},
			ExpansionHint: "Explain it for a beginner, start with a short definition, and then go deeper with an example.",
		},
		{
			Type: TaskComparison,
			Patterns: re(
				`\b(compare|comparison|contrast)\b`,
				`\b(vs\.?|versus)\b`,
				`\b(difference|differences|similarities)\b`,
				`\b(better|pros and cons|trade-?offs?)\b`,
			),
			Confidence:    0.9,
			ExpertRoles:   []string{"consultant", "researcher", "data-analyst"},
			ExpansionHint: "Compare the options on cost, quality and ease of use, and finish with a recommendation.",
		},
		{
			Type: TaskPlanning,
			Patterns: re(
				`\b(plan|planning|roadmap|schedule)\b`,
				`\b(steps?|milestones?|timeline)\b`,
				`\b(goals?|objectives?|strategy)\b`,
				`\b(project|launch|organi[sz]e)\b`,
			),
			Confidence:    0.85,
			ExpertRoles:   []string{"project-manager", "strategist", "consultant"},
			ExpansionHint: "Include concrete goals, a timeline with milestones, and the resources each step needs.",
		},
		{
			Type: TaskSummarization,
			Patterns: re(
				`\b(summari[sz]e|summary|tl;?dr)\b`,
				`\b(key points|main points|highlights)\b`,
				`\b(condense|shorten|brief)\b`,
			),
			Confidence:    0.9,
			ExpertRoles:   []string{"editor", "researcher", "technical-writer"},
			ExpansionHint: "Keep the summary under 150 words and focus on the most important points.",
		},
	}
}

var defaultRolePrefixes = map[string]string{
	"consultant":        "You are a seasoned management consultant who gives practical, well-reasoned advice.",
	"project-manager":   "You are an experienced project manager skilled at breaking goals into realistic plans.",
	"data-analyst":      "You are a meticulous data analyst who backs conclusions with evidence.",
	"technical-writer":  "You are a technical writer who explains complex topics clearly and accurately.",
	"teacher":           "You are a patient teacher who explains ideas step by step.",
	"writer":            "You are a skilled writer with a clear, engaging voice.",
	"researcher":        "You are a careful researcher who distinguishes evidence from opinion.",
	"storyteller":       "You are an imaginative storyteller who writes vivid, memorable narratives.",
	"editor":            "You are an experienced editor with a sharp eye for clarity and structure.",
	"software-engineer": "You are a senior software engineer who writes clean, well-tested code.",
	"strategist":        "You are a strategic planner who balances ambition with feasibility.",
}

var defaultOutputSections = map[TaskType][]string{
	TaskCreativeWriting: {"Title", "Main piece", "Optional alternate ending"},
	TaskCodeGeneration:  {"Code", "Explanation", "Usage example", "Edge cases"},
	TaskAnalysis:        {"Summary of findings", "Detailed analysis", "Recommendations"},
	TaskExplanation:     {"Short answer", "Detailed explanation", "Example"},
	TaskComparison:      {"Overview", "Side-by-side comparison", "Recommendation"},
	TaskPlanning:        {"Goals", "Step-by-step plan", "Timeline", "Risks"},
	TaskSummarization:   {"Key points", "Brief summary"},
}

var defaultLengthConstraints = map[string]string{
	"short":  "Provide a thorough, well-developed response.",
	"medium": "Keep the response focused and appropriately detailed.",
	"long":   "Address each part of the request in order.",
}

var defaultComplexityConstraints = map[string]string{
	"simple":   "Keep explanations simple and direct.",
	"moderate": "Explain any specialized terms briefly.",
	"complex":  "Break complex ideas into clear, numbered steps.",
}

var defaultUrgencyConstraints = map[string]string{
	"urgent": "Lead with the most important, actionable information.",
	"normal": "",
}

var defaultStyleConstraints = map[types.Style]string{
	types.StyleProfessional: "Maintain a professional tone.",
	types.StyleCasual:       "Keep the tone friendly and conversational.",
	types.StyleAcademic:     "Use formal language and support claims with evidence.",
	types.StyleCreative:     "Favor vivid, original language.",
	types.StyleTechnical:    "Use precise technical terminology.",
}

func defaultLexicon() Lexicon {
	return Lexicon{
		Filler: regexp.MustCompile(`(?i)\b(um+|uh+|erm|like|you know|basically|actually|literally|kind of|sort of|i mean|just)\b`),
		Vague:  regexp.MustCompile(`(?i)\b(good|nice|great|stuff|things?|very|really|interesting|etc)\b\.?`),
		VagueReplacements: map[string]string{
			"good":        "high-quality",
			"nice":        "polished",
			"great":       "excellent",
			"stuff":       "details",
			"thing":       "aspect",
			"things":      "aspects",
			"interesting": "engaging",
		},
		Quality:   regexp.MustCompile(`(?i)\b(accurate|detailed|comprehensive|clear|concise|specific|thorough|well-structured|precise|high-quality)\b`),
		FormatCue: regexp.MustCompile(`(?i)\b(format|list|table|bullet|json|markdown|paragraphs?|steps|outline|headings?|sections?)\b`),
		Urgency:   regexp.MustCompile(`(?i)\b(urgent|urgently|asap|quickly|immediately|deadline)\b`),
		Imperatives: map[string]bool{
			"write": true, "explain": true, "create": true, "generate": true, "list": true,
			"describe": true, "summarize": true, "summarise": true, "compare": true, "analyze": true,
			"analyse": true, "help": true, "give": true, "make": true, "tell": true, "show": true,
			"provide": true, "draft": true, "design": true, "build": true, "plan": true, "find": true,
			"suggest": true, "translate": true, "review": true, "fix": true, "implement": true,
			"outline": true, "calculate": true, "rewrite": true, "improve": true, "please": true,
			"evaluate": true, "compose": true, "develop": true, "recommend": true,
		},
	}
}
