package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teilomillet/promptlift/analyzer"
	"github.com/teilomillet/promptlift/types"
)

func TestPromptTemplate(t *testing.T) {
	t.Run("Execute", func(t *testing.T) {
		pt := NewPromptTemplate("general", "greeting", "greeting", "A greeting template", "Hello, {{.Name}}! Welcome to {{.Place}}.")
		out, err := pt.Execute(map[string]any{"Name": "Alice", "Place": "Wonderland"})
		require.NoError(t, err)
		assert.Equal(t, "Hello, Alice! Welcome to Wonderland.", out)
		assert.Equal(t, TemplateKey{Category: "general", Subcategory: "greeting"}, pt.Key)
	})

	t.Run("Execute with invalid template", func(t *testing.T) {
		pt := NewPromptTemplate("general", "broken", "invalid", "An invalid template", "Hello, {{.Name}! Missing closing brace")
		_, err := pt.Execute(map[string]any{"Name": "Bob"})
		assert.Error(t, err)
	})
}

func TestLibraryMatch(t *testing.T) {
	lib := DefaultLibrary()

	keys := func(pts []*PromptTemplate) []TemplateKey {
		var out []TemplateKey
		for _, pt := range pts {
			out = append(out, pt.Key)
		}
		return out
	}

	assert.Equal(t,
		[]TemplateKey{{"writing", "creative"}, {"writing", "article"}},
		keys(lib.Match("write a story about a robot", MaxTemplates)))

	assert.Equal(t,
		[]TemplateKey{{"writing", "article"}, {"coding", "implementation"}, {"analysis", "comparison"}},
		keys(lib.Match("write code to compare plans", MaxTemplates)))

	assert.Equal(t,
		[]TemplateKey{{"writing", "article"}, {"coding", "implementation"}, {"general", "structured"}},
		keys(lib.Select("write code to compare plans", true)))

	assert.Empty(t, lib.Match("hello there", MaxTemplates))
	assert.Equal(t, []TemplateKey{{"general", "structured"}}, keys(lib.Select("hello there", true)))

	_, ok := lib.Get("planning", "project")
	assert.True(t, ok)
	_, ok = lib.Get("planning", "wedding")
	assert.False(t, ok)
}

func TestBundleTemplates(t *testing.T) {
	g := New()
	text := "write a story about a robot"
	bundle := g.GenerateSuggestions(text, analyzer.New().Analyze(text), nil, Options{Level: types.LevelAdvanced})

	require.LessOrEqual(t, len(bundle.Templates), MaxTemplates)
	require.Len(t, bundle.Templates, 3)
	assert.Equal(t, "creative", bundle.Templates[0].Subcategory)
	assert.Contains(t, bundle.Templates[0].Template, "Premise: write a story about a robot")
	assert.Equal(t, "structured", bundle.Templates[2].Subcategory)
}
