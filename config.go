// This file re-exports configuration types and functions from the config
// package so callers can configure an Engine from the root package alone.
package promptlift

import (
	"github.com/teilomillet/promptlift/config"
	"github.com/teilomillet/promptlift/utils"
)

// Re-export core configuration types for easier access
type (
	// Config holds engine defaults, cache and batch limits, the persistence
	// backend and logging. See config.Config for the environment variables.
	//
	// Example usage:
	//   cfg := NewConfig()
	//   ApplyOptions(cfg, SetStoreBackend("sqlite"), SetSQLitePath("history.db"))
	Config = config.Config

	// ConfigOption modifies a Config.
	ConfigOption = config.ConfigOption

	// LogLevel defines the verbosity of logging output.
	LogLevel = utils.LogLevel
)

// Re-export core configuration functions
var (
	// LoadConfig reads PROMPTLIFT_* variables, filling gaps from .env files.
	LoadConfig = config.LoadConfig

	NewConfig    = config.NewConfig
	ApplyOptions = config.ApplyOptions

	SetLevel            = config.SetLevel
	SetPlatform         = config.SetPlatform
	SetStyle            = config.SetStyle
	SetEnableCaching    = config.SetEnableCaching
	SetMaxCacheSize     = config.SetMaxCacheSize
	SetBatchConcurrency = config.SetBatchConcurrency
	SetBatchRateLimit   = config.SetBatchRateLimit
	SetHistoryLimit     = config.SetHistoryLimit
	SetStoreBackend     = config.SetStoreBackend
	SetSQLitePath       = config.SetSQLitePath
	SetRedis            = config.SetRedis
	SetTokenizerModel   = config.SetTokenizerModel
	SetLogLevel         = config.SetLogLevel
	SetLogger           = config.SetLogger
	SetHTTPAddr         = config.SetHTTPAddr
)

// Log levels
const (
	LogLevelOff   = utils.LogLevelOff
	LogLevelError = utils.LogLevelError
	LogLevelWarn  = utils.LogLevelWarn
	LogLevelInfo  = utils.LogLevelInfo
	LogLevelDebug = utils.LogLevelDebug
)
