package rules

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teilomillet/promptlift/types"
)

func TestDefaultCoversEveryPlatformAndStyle(t *testing.T) {
	c := Default()
	for _, p := range types.Platforms {
		pr, ok := c.Platform(p)
		require.True(t, ok, p)
		assert.NotEmpty(t, pr.SuffixRules, p)
		assert.NotEmpty(t, pr.OptimizationPatterns, p)
		assert.Positive(t, pr.MaxOptimalLength, p)
	}
	for _, s := range types.Styles {
		sr := c.Style(s)
		assert.NotEmpty(t, sr.ExpertRoles, s)
		for _, role := range sr.ExpertRoles {
			assert.NotEmpty(t, c.RolePrefixes[role], role)
		}
	}
	_, ok := c.Platform(types.PlatformNone)
	assert.False(t, ok)
	assert.Same(t, Default(), c)
}

func TestDetectTaskType(t *testing.T) {
	c := Default()
	tests := []struct {
		text string
		want TaskType
	}{
		{"write a story", TaskCreativeWriting},
		{"Write a Python function to parse an API response", TaskCodeGeneration},
		{"Compare React versus Vue", TaskComparison},
		{"Plan the project timeline with milestones", TaskPlanning},
		{"hello there", TaskNone},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, conf := c.DetectTaskType(tt.text)
			assert.Equal(t, tt.want, got)
			if tt.want == TaskNone {
				assert.Zero(t, conf)
			} else {
				assert.Greater(t, conf, MinTaskConfidence)
			}
		})
	}
}

func TestDetectTaskTypeTieKeepsDeclarationOrder(t *testing.T) {
	c := &Catalog{Tasks: []TaskPattern{
		{Type: "first", Patterns: []*regexp.Regexp{regexp.MustCompile("alpha")}, Confidence: 0.5},
		{Type: "second", Patterns: []*regexp.Regexp{regexp.MustCompile("alpha")}, Confidence: 0.5},
	}}
	got, _ := c.DetectTaskType("alpha")
	assert.Equal(t, TaskType("first"), got)
}

func TestGetExpertRole(t *testing.T) {
	c := Default()
	assert.Equal(t, "software-engineer", c.GetExpertRole(TaskCodeGeneration, types.StyleTechnical))
	assert.Equal(t, "storyteller", c.GetExpertRole(TaskCreativeWriting, types.StyleCreative))
	// professional and code generation share nothing
	assert.Equal(t, "consultant", c.GetExpertRole(TaskCodeGeneration, types.StyleProfessional))
	assert.Equal(t, "teacher", c.GetExpertRole(TaskNone, types.StyleCasual))
}

func TestRolePrefix(t *testing.T) {
	c := Default()
	assert.Contains(t, c.RolePrefix("teacher"), "teacher")
	assert.Equal(t, "You are an experienced sound engineer.", c.RolePrefix("sound-engineer"))
	assert.Empty(t, c.RolePrefix(""))
}

func TestGenerateConstraints(t *testing.T) {
	c := Default()

	got := c.GenerateConstraints("write a story", types.StyleCasual, types.PlatformNone)
	assert.Equal(t, []string{
		c.LengthConstraints["short"],
		c.StyleConstraints[types.StyleCasual],
	}, got)

	got = c.GenerateConstraints("I need this urgently: summarize the report", types.StyleProfessional, types.PlatformClaude)
	require.Len(t, got, 4)
	assert.Contains(t, got[1], "Claude")
	assert.Equal(t, c.UrgencyConstraints["urgent"], got[2])

	long := ""
	for i := 0; i < 160; i++ {
		long += "word "
	}
	got = c.GenerateConstraints(long, types.StyleTechnical, types.PlatformPerplexity)
	assert.Equal(t, c.LengthConstraints["long"], got[0])
	assert.Contains(t, got[1], "under 150 words")
}

func TestComplexityConstraint(t *testing.T) {
	c := Default()
	assert.Equal(t, c.ComplexityConstraints["simple"], c.ComplexityConstraint(5))
	assert.Equal(t, c.ComplexityConstraints["moderate"], c.ComplexityConstraint(30))
	assert.Equal(t, c.ComplexityConstraints["complex"], c.ComplexityConstraint(80))
}

func TestDefaultTablesArePopulated(t *testing.T) {
	c := Default()
	for _, p := range types.Platforms {
		pr, ok := c.Platform(p)
		require.True(t, ok, p)
		assert.NotEmpty(t, pr.PrefixRules, p)
		assert.NotEmpty(t, pr.StructureRules, p)
		assert.NotEmpty(t, pr.AvoidPatterns, p)
		assert.NotEmpty(t, pr.Strengths, p)
		assert.NotEmpty(t, pr.Weaknesses, p)
		assert.NotEmpty(t, pr.PreferredStructure, p)
	}
	for _, s := range types.Styles {
		sr := c.Style(s)
		assert.NotEmpty(t, sr.Characteristics, s)
		assert.NotEmpty(t, sr.PrefixEnhancements, s)
		assert.NotEmpty(t, sr.StructuralEnhancements, s)
		assert.NotEmpty(t, sr.LanguageEnhancements, s)
		assert.NotEmpty(t, sr.OutputEnhancements, s)
	}
}
