package types

// Priority of a suggestion or recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities with high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Example is a literal before/after illustration of a suggestion.
type Example struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Suggestion is a single actionable improvement.
type Suggestion struct {
	Type       string   `json:"type"`
	Priority   Priority `json:"priority"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
	Example    Example  `json:"example"`
	// Template is a literal block the user can splice into the prompt.
	Template string `json:"template,omitempty"`
}

// TemplateSuggestion is a prompt template offered alongside the rewrite.
type TemplateSuggestion struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Template    string `json:"template"`
}

// SuggestionBundle groups suggestions by the rewrite stage that acts on them.
type SuggestionBundle struct {
	Immediate        []Suggestion         `json:"immediate"`
	Structural       []Suggestion         `json:"structural"`
	Enhancement      []Suggestion         `json:"enhancement"`
	PlatformSpecific []Suggestion         `json:"platformSpecific"`
	Templates        []TemplateSuggestion `json:"templates"`
}

// Has reports whether any suggestion of the given type is in the list.
func Has(list []Suggestion, typ string) bool {
	for _, s := range list {
		if s.Type == typ {
			return true
		}
	}
	return false
}
