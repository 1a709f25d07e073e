// File: optimizer/utils.go

package optimizer

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"golang.org/x/time/rate"

	"github.com/teilomillet/promptlift/analyzer"
	"github.com/teilomillet/promptlift/rules"
	"github.com/teilomillet/promptlift/scorer"
	"github.com/teilomillet/promptlift/store"
	"github.com/teilomillet/promptlift/suggest"
	"github.com/teilomillet/promptlift/types"
	"github.com/teilomillet/promptlift/utils"
)

// OptimizeOption adjusts the Options of one call.
type OptimizeOption func(*Options)

func WithLevel(level types.Level) OptimizeOption {
	return func(o *Options) {
		o.Level = level
	}
}

func WithPlatform(platform types.Platform) OptimizeOption {
	return func(o *Options) {
		o.Platform = platform
	}
}

func WithStyle(style types.Style) OptimizeOption {
	return func(o *Options) {
		o.Style = style
	}
}

func WithContext(context ...string) OptimizeOption {
	return func(o *Options) {
		o.Context = append(o.Context, context...)
	}
}

func WithIncludeAnalysis(include bool) OptimizeOption {
	return func(o *Options) {
		o.IncludeAnalysis = include
	}
}

func WithIncludeSuggestions(include bool) OptimizeOption {
	return func(o *Options) {
		o.IncludeSuggestions = include
	}
}

func WithGenerateAlternatives(generate bool) OptimizeOption {
	return func(o *Options) {
		o.GenerateAlternatives = generate
	}
}

// WithOptions replaces every field at once.
func WithOptions(opts Options) OptimizeOption {
	return func(o *Options) {
		*o = opts
	}
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

func WithStore(s store.Store) EngineOption {
	return func(e *Engine) {
		e.store = s
	}
}

func WithLogger(logger utils.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithCaching(enabled bool) EngineOption {
	return func(e *Engine) {
		e.caching = enabled
	}
}

func WithMaxCacheSize(size int) EngineOption {
	return func(e *Engine) {
		if size < 1 {
			size = 1
		}
		e.cache.max = size
	}
}

func WithHistoryLimit(limit int) EngineOption {
	return func(e *Engine) {
		e.historyLimit = limit
	}
}

func WithBatchConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.batchConcurrency = n
	}
}

// WithBatchRateLimit paces batch windows to perSecond windows per second.
// Zero or less disables pacing.
func WithBatchRateLimit(perSecond float64) EngineOption {
	return func(e *Engine) {
		if perSecond <= 0 {
			e.limiter = nil
			return
		}
		e.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithDefaults sets the Options every call starts from.
func WithDefaults(opts Options) EngineOption {
	return func(e *Engine) {
		e.defaults = opts
	}
}

func WithAnalyzer(a *analyzer.Analyzer) EngineOption {
	return func(e *Engine) {
		e.analyzer = a
	}
}

func WithScorer(s *scorer.Scorer) EngineOption {
	return func(e *Engine) {
		e.scorer = s
	}
}

func WithGenerator(g *suggest.Generator) EngineOption {
	return func(e *Engine) {
		e.generator = g
	}
}

func WithCatalog(c *rules.Catalog) EngineOption {
	return func(e *Engine) {
		e.catalog = c
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

func WithIDGenerator(newID func() string) EngineOption {
	return func(e *Engine) {
		e.newID = newID
	}
}

// WithFingerprint replaces the cache key function.
func WithFingerprint(f FingerprintFunc) EngineOption {
	return func(e *Engine) {
		e.fingerprint = f
	}
}

// FingerprintFunc derives a cache key from a prompt and the options that
// change its rewrite.
type FingerprintFunc func(prompt string, level types.Level, platform types.Platform, style types.Style) string

// Fingerprint hashes the first FingerprintPrefixRunes runes of prompt together
// with level, platform and style. The include flags are not part of the key.
func Fingerprint(prompt string, level types.Level, platform types.Platform, style types.Style) string {
	prefix := []rune(prompt)
	if len(prefix) > FingerprintPrefixRunes {
		prefix = prefix[:FingerprintPrefixRunes]
	}
	h := sha256.New()
	h.Write([]byte(string(prefix)))
	h.Write([]byte{0})
	h.Write([]byte(level))
	h.Write([]byte{0})
	h.Write([]byte(platform))
	h.Write([]byte{0})
	h.Write([]byte(style))
	return hex.EncodeToString(h.Sum(nil))
}
