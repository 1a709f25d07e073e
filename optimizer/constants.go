package optimizer

// Default engine configuration values
const (
	DefaultMaxCacheSize     = 100
	DefaultBatchConcurrency = 3
	DefaultHistoryLimit     = 50
)

// FingerprintPrefixRunes bounds how much of a prompt feeds the cache key.
const FingerprintPrefixRunes = 200

// Persistence keys
const (
	AnalyticsKey = "promptlift:analytics"
	HistoryKey   = "promptlift:history"
)

// Improvement thresholds
const (
	minAspectDelta = 5 // aspect improvements must exceed this
	maxQuickTips   = 3
)
