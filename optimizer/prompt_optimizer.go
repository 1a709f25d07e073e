// File: optimizer/prompt_optimizer.go

package optimizer

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/teilomillet/promptlift/analyzer"
	"github.com/teilomillet/promptlift/rules"
	"github.com/teilomillet/promptlift/scorer"
	"github.com/teilomillet/promptlift/store"
	"github.com/teilomillet/promptlift/suggest"
	"github.com/teilomillet/promptlift/types"
	"github.com/teilomillet/promptlift/utils"
)

// Engine orchestrates analysis, scoring and rewriting, and owns the result
// cache and usage analytics. It is safe for concurrent use.
type Engine struct {
	analyzer  *analyzer.Analyzer
	scorer    *scorer.Scorer
	generator *suggest.Generator
	catalog   *rules.Catalog
	store     store.Store
	logger    utils.Logger

	now         func() time.Time
	newID       func() string
	fingerprint FingerprintFunc

	defaults         Options
	caching          bool
	historyLimit     int
	batchConcurrency int
	limiter          *rate.Limiter

	mu              sync.Mutex
	cache           *resultCache
	analytics       AnalyticsState
	analyticsLoaded bool

	historyMu      sync.Mutex
	pendingHistory []types.HistoryRecord
}

// NewEngine builds an Engine and loads persisted analytics. A missing or
// failing store never prevents construction: the engine falls back to an
// in-memory store and logs a warning.
func NewEngine(ctx context.Context, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog:          rules.Default(),
		logger:           utils.NewLogger(utils.LogLevelWarn),
		now:              time.Now,
		newID:            func() string { return uuid.New().String() },
		fingerprint:      Fingerprint,
		defaults:         DefaultOptions(),
		caching:          true,
		historyLimit:     DefaultHistoryLimit,
		batchConcurrency: DefaultBatchConcurrency,
		cache:            newResultCache(DefaultMaxCacheSize),
		analytics:        AnalyticsState{PlatformUsage: make(map[string]int)},
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.analyzer == nil {
		e.analyzer = analyzer.New()
	}
	if e.scorer == nil {
		e.scorer = scorer.New(scorer.WithAnalyzer(e.analyzer), scorer.WithCatalog(e.catalog), scorer.WithLogger(e.logger))
	}
	if e.generator == nil {
		e.generator = suggest.New(suggest.WithCatalog(e.catalog), suggest.WithLogger(e.logger))
	}
	if e.store == nil {
		err := types.NewPromptError(types.ErrorTypeCacheUnavailable, "no persistence configured, using memory", nil)
		e.logger.Debug("Falling back to in-memory store", err.LoggableFields()...)
		e.store = store.NewMemoryStore()
	}

	e.loadAnalytics(ctx)
	return e
}

// Optimize analyzes, scores and rewrites prompt. The only error returned for
// bad input is a validation PromptError; an unexpected internal failure is
// returned as an Internal PromptError and leaves the cache and analytics
// untouched.
func (e *Engine) Optimize(ctx context.Context, prompt string, opts ...OptimizeOption) (*OptimizationResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, types.NewPromptError(types.ErrorTypeValidation, "prompt must be a non-empty string", nil)
	}

	o := e.defaults
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	key := e.fingerprint(prompt, o.Level, o.Platform, o.Style)
	if e.caching {
		e.mu.Lock()
		cached, ok := e.cache.get(key)
		e.mu.Unlock()
		if ok {
			e.logger.Debug("Cache hit", "fingerprint", key[:min(12, len(key))])
			return cached, nil
		}
	}

	result, err := e.safeOptimize(prompt, o)
	if err != nil {
		return nil, err
	}

	e.commit(ctx, key, result)
	return result, nil
}

func (e *Engine) safeOptimize(prompt string, o Options) (result *OptimizationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Optimization panicked", "panic", r, "stack", string(debug.Stack()))
			result = nil
			err = types.NewPromptError(types.ErrorTypeInternal, "optimization failed", fmt.Errorf("%v", r))
		}
	}()
	return e.optimize(prompt, o), nil
}

func (e *Engine) optimize(prompt string, o Options) *OptimizationResult {
	start := e.now()

	original := e.assess(prompt, o)
	improvement := e.calculateImprovement(original)

	result := &OptimizationResult{
		ID: e.newID(),
		Original: TextVersion{
			Text:  prompt,
			Score: original.report.Overall,
			Grade: original.report.Grade,
		},
		Optimized: TextVersion{
			Text:  original.rewrite,
			Score: original.rewriteReport.Overall,
			Grade: original.rewriteReport.Grade,
		},
		Alternatives: []Alternative{},
		Improvement:  improvement,
	}
	if o.IncludeAnalysis {
		oa, ra := original.analysis, original.rewriteAnalysis
		result.Original.Analysis = &oa
		result.Optimized.Analysis = &ra
	}
	if o.IncludeSuggestions {
		b := original.bundle
		result.Suggestions = &b
	}
	if o.GenerateAlternatives {
		result.Alternatives = e.alternatives(prompt, o)
	}

	end := e.now()
	result.Metadata = Metadata{
		Level:            o.Level,
		Platform:         o.Platform,
		Style:            o.Style,
		ProcessingTimeMs: end.Sub(start).Milliseconds(),
		Timestamp:        end,
	}
	return result
}

// commit inserts the result into the cache, updates analytics and persists
// analytics and history. Persistence failures are logged only. Analytics are
// not written until the persisted state has been read, so a failed load never
// overwrites it.
func (e *Engine) commit(ctx context.Context, key string, result *OptimizationResult) {
	e.mu.Lock()
	if e.caching {
		if evicted := e.cache.put(key, result); evicted != "" {
			e.logger.Debug("Evicted oldest cache entry", "fingerprint", evicted[:min(12, len(evicted))])
		}
	}
	e.recordAnalytics(result)
	loaded := e.analyticsLoaded
	e.mu.Unlock()

	if loaded || e.loadAnalytics(ctx) {
		_ = e.saveAnalytics(ctx, e.Analytics())
	}
	e.appendHistory(ctx, result.Record())
}

// recordAnalytics must be called with e.mu held.
func (e *Engine) recordAnalytics(result *OptimizationResult) {
	a := &e.analytics
	a.Optimizations++
	if a.PlatformUsage == nil {
		a.PlatformUsage = make(map[string]int)
	}
	a.PlatformUsage[result.Metadata.Platform.Label()]++
	if delta := float64(result.Improvement.OverallScoreChange); delta > 0 {
		a.ImprovedOptimizations++
		a.AverageScoreImprovement += (delta - a.AverageScoreImprovement) / float64(a.ImprovedOptimizations)
	}
}

// Analytics returns a copy of the current analytics.
func (e *Engine) Analytics() AnalyticsState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.analytics.clone()
}

// ClearAnalytics resets analytics and persists the empty state.
func (e *Engine) ClearAnalytics(ctx context.Context) error {
	e.mu.Lock()
	e.analytics = AnalyticsState{PlatformUsage: make(map[string]int)}
	e.analyticsLoaded = true
	snapshot := e.analytics.clone()
	e.mu.Unlock()
	return e.saveAnalytics(ctx, snapshot)
}

// ClearCache drops every cached result.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.clear()
}

// CacheSize returns the number of cached results.
func (e *Engine) CacheSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cache.size()
}

// Defaults returns the options every call starts from.
func (e *Engine) Defaults() Options {
	return e.defaults
}

// Scorer exposes the engine's scorer for standalone scoring.
func (e *Engine) Scorer() *scorer.Scorer {
	return e.scorer
}

// Close releases the store.
func (e *Engine) Close() error {
	return e.store.Close()
}
