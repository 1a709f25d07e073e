// Package types contains shared type definitions used across the promptlift packages.
// It helps avoid import cycles while providing common data structures.
package types

import (
	"fmt"
	"strings"
)

// Platform identifies the chat platform a prompt is written for.
// The zero value means no platform was specified.
type Platform string

const (
	PlatformNone        Platform = ""
	PlatformChatGPT     Platform = "chatgpt"
	PlatformClaude      Platform = "claude"
	PlatformGemini      Platform = "gemini"
	PlatformPerplexity  Platform = "perplexity"
	PlatformCopilot     Platform = "copilot"
	PlatformPoe         Platform = "poe"
	PlatformCharacterAI Platform = "characterai"
)

// Platforms lists every supported platform in catalog order.
var Platforms = []Platform{
	PlatformChatGPT,
	PlatformClaude,
	PlatformGemini,
	PlatformPerplexity,
	PlatformCopilot,
	PlatformPoe,
	PlatformCharacterAI,
}

// ParsePlatform resolves a platform id. An empty string yields PlatformNone;
// unknown ids are rejected instead of silently ignored.
func ParsePlatform(s string) (Platform, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	if id == "" || id == "none" {
		return PlatformNone, nil
	}
	for _, p := range Platforms {
		if string(p) == id {
			return p, nil
		}
	}
	return PlatformNone, NewPromptError(ErrorTypeValidation, fmt.Sprintf("unknown platform %q", s), nil)
}

// Label returns the key used for analytics and history.
func (p Platform) Label() string {
	if p == PlatformNone {
		return "none"
	}
	return string(p)
}

// Level is the optimization aggressiveness tier.
type Level string

const (
	LevelBasic    Level = "basic"
	LevelAdvanced Level = "advanced"
	LevelExpert   Level = "expert"
)

// Levels lists the tiers from least to most aggressive.
var Levels = []Level{LevelBasic, LevelAdvanced, LevelExpert}

func ParseLevel(s string) (Level, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Levels {
		if string(l) == id {
			return l, nil
		}
	}
	return "", NewPromptError(ErrorTypeValidation, fmt.Sprintf("unknown level %q", s), nil)
}

// Style is the register the rewritten prompt should target.
type Style string

const (
	StyleProfessional Style = "professional"
	StyleCasual       Style = "casual"
	StyleAcademic     Style = "academic"
	StyleCreative     Style = "creative"
	StyleTechnical    Style = "technical"
)

var Styles = []Style{StyleProfessional, StyleCasual, StyleAcademic, StyleCreative, StyleTechnical}

func ParseStyle(s string) (Style, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	if id == "" {
		return StyleProfessional, nil
	}
	for _, st := range Styles {
		if string(st) == id {
			return st, nil
		}
	}
	return "", NewPromptError(ErrorTypeValidation, fmt.Sprintf("unknown style %q", s), nil)
}
