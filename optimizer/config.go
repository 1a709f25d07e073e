// Package optimizer scores prompts, rewrites them and keeps the cache,
// analytics and history that surround those rewrites.
package optimizer

import (
	"github.com/go-playground/validator/v10"

	"github.com/teilomillet/promptlift/types"
)

// validate is the shared validator instance used across the package.
var validate = validator.New()

// Options controls a single Optimize call.
type Options struct {
	// Level gates which rewrite stages run:
	//   - basic: immediate fixes only
	//   - advanced: immediate and structural fixes
	//   - expert: everything, including role, requirements and output sections
	Level types.Level `validate:"oneof=basic advanced expert"`

	// Platform adds platform-specific closing instructions or delimiters.
	// The empty platform means none.
	Platform types.Platform `validate:"omitempty,oneof=chatgpt claude gemini perplexity copilot poe characterai"`

	// Style selects the register used for expert roles and constraints.
	Style types.Style `validate:"oneof=professional casual academic creative technical"`

	// Context is reserved for caller-supplied background and is not yet
	// used by the rewrite.
	Context []string

	// IncludeAnalysis attaches the AnalysisResult of both texts.
	IncludeAnalysis bool

	// IncludeSuggestions attaches the SuggestionBundle for the original text.
	IncludeSuggestions bool

	// GenerateAlternatives also rewrites at the two other levels.
	GenerateAlternatives bool
}

// DefaultOptions returns the options Optimize uses when none are given.
//
// Default values:
//   - Level: advanced
//   - Platform: none
//   - Style: professional
//   - IncludeAnalysis: true
//   - IncludeSuggestions: true
//   - GenerateAlternatives: false
func DefaultOptions() Options {
	return Options{
		Level:              types.LevelAdvanced,
		Platform:           types.PlatformNone,
		Style:              types.StyleProfessional,
		IncludeAnalysis:    true,
		IncludeSuggestions: true,
	}
}

// Validate checks the enumerations and returns a validation PromptError.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return types.NewPromptError(types.ErrorTypeValidation, "invalid optimization options", err)
	}
	return nil
}

// BatchOptions controls BatchOptimize.
type BatchOptions struct {
	// Concurrent is the window size; zero uses the engine default.
	Concurrent int `validate:"min=0"`
	// StopOnError aborts the batch at the first failed window.
	StopOnError bool
	// Progress, if set, is called after each window with the number of
	// prompts it finished.
	Progress func(n int) `json:"-"`
}
