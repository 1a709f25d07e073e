// File: promptlift.go

// Package promptlift scores chat prompts and rewrites them into clearer,
// better structured prompts for a target platform.
//
// Example usage:
//
//	engine, err := promptlift.New(ctx, promptlift.SetLevel(promptlift.LevelExpert))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//	res, err := engine.Optimize(ctx, "write a story")
package promptlift

import (
	"context"

	"github.com/teilomillet/promptlift/analyzer"
	"github.com/teilomillet/promptlift/config"
	"github.com/teilomillet/promptlift/optimizer"
	"github.com/teilomillet/promptlift/scorer"
	"github.com/teilomillet/promptlift/store"
	"github.com/teilomillet/promptlift/suggest"
	"github.com/teilomillet/promptlift/types"
)

// Re-export the engine types callers handle directly.
type (
	Engine             = optimizer.Engine
	OptimizationResult = optimizer.OptimizationResult
	BatchResult        = optimizer.BatchResult
	BatchOptions       = optimizer.BatchOptions
	RealtimeResult     = optimizer.RealtimeResult
	OptimizeOption     = optimizer.OptimizeOption
	QualityReport      = scorer.QualityReport
	Level              = types.Level
	Platform           = types.Platform
	Style              = types.Style
)

const (
	LevelBasic    = types.LevelBasic
	LevelAdvanced = types.LevelAdvanced
	LevelExpert   = types.LevelExpert
)

// New loads configuration from the environment (and a .env file if present),
// applies opts on top, and builds an Engine from the result.
func New(ctx context.Context, opts ...ConfigOption) (*Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	config.ApplyOptions(cfg, opts...)
	return NewFromConfig(ctx, cfg)
}

// NewFromConfig builds an Engine from cfg. A store that cannot be opened is
// replaced by an in-memory store, and a tokenizer that cannot be loaded by the
// character heuristic; both are logged as warnings.
func NewFromConfig(ctx context.Context, cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.NewLogger()

	var analyzerOpts []analyzer.Option
	if cfg.TokenizerModel != "" {
		counter, err := analyzer.NewTiktokenCounter(cfg.TokenizerModel)
		if err != nil {
			logger.Warn("Falling back to heuristic token counts", "model", cfg.TokenizerModel, "error", err)
		} else {
			analyzerOpts = append(analyzerOpts, analyzer.WithTokenCounter(counter))
		}
	}
	a := analyzer.New(analyzerOpts...)

	s, err := store.Open(ctx, cfg)
	if err != nil {
		perr := types.NewPromptError(types.ErrorTypeCacheUnavailable, "store unavailable, using memory", err)
		logger.Warn("Falling back to in-memory store", append(perr.LoggableFields(), "backend", cfg.StoreBackend)...)
		s = store.NewMemoryStore()
	}

	defaults := optimizer.DefaultOptions()
	defaults.Level = cfg.DefaultLevel
	defaults.Platform = cfg.DefaultPlatform
	defaults.Style = cfg.DefaultStyle

	return optimizer.NewEngine(ctx,
		optimizer.WithLogger(logger),
		optimizer.WithStore(s),
		optimizer.WithAnalyzer(a),
		optimizer.WithScorer(scorer.New(scorer.WithAnalyzer(a), scorer.WithLogger(logger))),
		optimizer.WithGenerator(suggest.New(suggest.WithLogger(logger))),
		optimizer.WithDefaults(defaults),
		optimizer.WithCaching(cfg.EnableCaching),
		optimizer.WithMaxCacheSize(cfg.MaxCacheSize),
		optimizer.WithHistoryLimit(cfg.HistoryLimit),
		optimizer.WithBatchConcurrency(cfg.BatchConcurrency),
		optimizer.WithBatchRateLimit(cfg.BatchRateLimit),
	), nil
}
