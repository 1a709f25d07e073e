// File: config/config.go

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/teilomillet/promptlift/types"
	"github.com/teilomillet/promptlift/utils"
)

// validate is the shared validator instance for configuration checks.
var validate = validator.New()

type Config struct {
	DefaultLevel    types.Level    `env:"PROMPTLIFT_LEVEL" envDefault:"advanced" validate:"oneof=basic advanced expert"`
	DefaultPlatform types.Platform `env:"PROMPTLIFT_PLATFORM" validate:"omitempty,oneof=chatgpt claude gemini perplexity copilot poe characterai"`
	DefaultStyle    types.Style    `env:"PROMPTLIFT_STYLE" envDefault:"professional" validate:"oneof=professional casual academic creative technical"`

	EnableCaching bool `env:"PROMPTLIFT_ENABLE_CACHING" envDefault:"true"`
	MaxCacheSize  int  `env:"PROMPTLIFT_MAX_CACHE_SIZE" envDefault:"100" validate:"min=1"`

	BatchConcurrency int `env:"PROMPTLIFT_BATCH_CONCURRENCY" envDefault:"3" validate:"min=1"`
	// BatchRateLimit is the number of batch windows started per second; 0 disables pacing.
	BatchRateLimit float64 `env:"PROMPTLIFT_BATCH_RATE_LIMIT" envDefault:"0" validate:"min=0"`
	HistoryLimit   int     `env:"PROMPTLIFT_HISTORY_LIMIT" envDefault:"50" validate:"min=0"`

	StoreBackend  string `env:"PROMPTLIFT_STORE" envDefault:"memory" validate:"oneof=memory sqlite redis"`
	SQLitePath    string `env:"PROMPTLIFT_SQLITE_PATH" envDefault:"promptlift.db" validate:"required_if=StoreBackend sqlite"`
	RedisAddr     string `env:"PROMPTLIFT_REDIS_ADDR" envDefault:"localhost:6379" validate:"required_if=StoreBackend redis"`
	RedisPassword string `env:"PROMPTLIFT_REDIS_PASSWORD"`
	RedisDB       int    `env:"PROMPTLIFT_REDIS_DB" envDefault:"0" validate:"min=0"`

	// TokenizerModel selects a tiktoken encoding for token estimates. Empty
	// uses the character heuristic.
	TokenizerModel string         `env:"PROMPTLIFT_TOKENIZER_MODEL"`
	LogLevel       utils.LogLevel `env:"PROMPTLIFT_LOG_LEVEL" envDefault:"WARN"`
	HTTPAddr       string         `env:"PROMPTLIFT_HTTP_ADDR" envDefault:":8080"`

	Logger utils.Logger
}

// LoadConfig reads configuration from the environment. Values from the given
// dotenv files (".env" when none are named) fill in variables the process
// environment does not set. Missing dotenv files are ignored.
func LoadConfig(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	environment := make(map[string]string)
	for _, f := range files {
		values, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range values {
			environment[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environment[k] = v
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return types.NewPromptError(types.ErrorTypeValidation, "invalid configuration", err)
	}
	return nil
}

type ConfigOption func(*Config)

// NewConfig returns the defaults without reading the environment.
func NewConfig() *Config {
	return &Config{
		DefaultLevel:     types.LevelAdvanced,
		DefaultStyle:     types.StyleProfessional,
		EnableCaching:    true,
		MaxCacheSize:     100,
		BatchConcurrency: 3,
		HistoryLimit:     50,
		StoreBackend:     "memory",
		SQLitePath:       "promptlift.db",
		RedisAddr:        "localhost:6379",
		LogLevel:         utils.LogLevelWarn,
		HTTPAddr:         ":8080",
	}
}

func SetLevel(level types.Level) ConfigOption {
	return func(c *Config) {
		c.DefaultLevel = level
	}
}

func SetPlatform(platform types.Platform) ConfigOption {
	return func(c *Config) {
		c.DefaultPlatform = platform
	}
}

func SetStyle(style types.Style) ConfigOption {
	return func(c *Config) {
		c.DefaultStyle = style
	}
}

func SetEnableCaching(enableCaching bool) ConfigOption {
	return func(c *Config) {
		c.EnableCaching = enableCaching
	}
}

func SetMaxCacheSize(size int) ConfigOption {
	return func(c *Config) {
		if size < 1 {
			size = 1
		}
		c.MaxCacheSize = size
	}
}

func SetBatchConcurrency(n int) ConfigOption {
	return func(c *Config) {
		if n < 1 {
			n = 1
		}
		c.BatchConcurrency = n
	}
}

func SetBatchRateLimit(perSecond float64) ConfigOption {
	return func(c *Config) {
		c.BatchRateLimit = perSecond
	}
}

func SetHistoryLimit(limit int) ConfigOption {
	return func(c *Config) {
		c.HistoryLimit = limit
	}
}

func SetStoreBackend(backend string) ConfigOption {
	return func(c *Config) {
		c.StoreBackend = strings.ToLower(backend)
	}
}

func SetSQLitePath(path string) ConfigOption {
	return func(c *Config) {
		c.SQLitePath = path
	}
}

func SetRedis(addr, password string, db int) ConfigOption {
	return func(c *Config) {
		c.RedisAddr = addr
		c.RedisPassword = password
		c.RedisDB = db
	}
}

func SetTokenizerModel(model string) ConfigOption {
	return func(c *Config) {
		c.TokenizerModel = model
	}
}

func SetLogLevel(level utils.LogLevel) ConfigOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// SetLogger replaces the logger built from LogLevel.
func SetLogger(logger utils.Logger) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

func SetHTTPAddr(addr string) ConfigOption {
	return func(c *Config) {
		c.HTTPAddr = addr
	}
}

func ApplyOptions(cfg *Config, options ...ConfigOption) {
	for _, option := range options {
		option(cfg)
	}
}

// NewLogger returns the configured logger, or a DefaultLogger at LogLevel.
func (c *Config) NewLogger() utils.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return utils.NewLogger(c.LogLevel)
}
