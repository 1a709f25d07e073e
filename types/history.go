package types

import "time"

// HistoryRecord is the persisted summary of one optimization.
type HistoryRecord struct {
	ID               string    `json:"id" jsonschema:"description=Unique optimization id"`
	Timestamp        time.Time `json:"timestamp"`
	Level            Level     `json:"level" jsonschema:"enum=basic,enum=advanced,enum=expert"`
	Platform         string    `json:"platform" jsonschema:"description=Target platform id or none"`
	Style            Style     `json:"style"`
	OriginalText     string    `json:"originalText"`
	OptimizedText    string    `json:"optimizedText"`
	OriginalScore    int       `json:"originalScore" jsonschema:"minimum=0,maximum=100"`
	OptimizedScore   int       `json:"optimizedScore" jsonschema:"minimum=0,maximum=100"`
	OriginalGrade    string    `json:"originalGrade"`
	OptimizedGrade   string    `json:"optimizedGrade"`
	ScoreChange      int       `json:"scoreChange"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
}
