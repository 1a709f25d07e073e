// Package utils provides the logging surface shared by every promptlift package.
package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel orders verbosity from OFF to DEBUG.
type LogLevel int

const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger is accepted by every component. Key/value pairs follow log/slog.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	SetLevel(level LogLevel)
}

// slogOff is above every slog level, so nothing passes the handler.
const slogOff = slog.LevelError + 4

var slogLevels = [...]slog.Level{
	LogLevelOff:   slogOff,
	LogLevelError: slog.LevelError,
	LogLevelWarn:  slog.LevelWarn,
	LogLevelInfo:  slog.LevelInfo,
	LogLevelDebug: slog.LevelDebug,
}

func (l LogLevel) slogLevel() slog.Level {
	if l < LogLevelOff || l > LogLevelDebug {
		return slog.LevelInfo
	}
	return slogLevels[l]
}

// DefaultLogger writes text records tagged component=promptlift. The level is
// held in a slog.LevelVar, so SetLevel is safe while other goroutines log.
type DefaultLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

// NewLogger returns a logger writing to stderr.
func NewLogger(level LogLevel) *DefaultLogger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo returns a logger writing to w.
func NewLoggerTo(w io.Writer, level LogLevel) *DefaultLogger {
	lv := new(slog.LevelVar)
	lv.Set(level.slogLevel())
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})
	return &DefaultLogger{
		logger: slog.New(h).With("component", "promptlift"),
		level:  lv,
	}
}

func (l *DefaultLogger) SetLevel(level LogLevel) { l.level.Set(level.slogLevel()) }

// Level reports the current level.
func (l *DefaultLogger) Level() LogLevel {
	cur := l.level.Level()
	for lvl, s := range slogLevels {
		if s == cur {
			return LogLevel(lvl)
		}
	}
	return LogLevelInfo
}

func (l *DefaultLogger) Debug(msg string, kv ...any) { l.logger.Debug(msg, kv...) }
func (l *DefaultLogger) Info(msg string, kv ...any)  { l.logger.Info(msg, kv...) }
func (l *DefaultLogger) Warn(msg string, kv ...any)  { l.logger.Warn(msg, kv...) }
func (l *DefaultLogger) Error(msg string, kv ...any) { l.logger.Error(msg, kv...) }

// NopLogger discards everything.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (NopLogger) SetLevel(LogLevel)    {}

func (l LogLevel) String() string {
	if l < LogLevelOff || l > LogLevelDebug {
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
	return [...]string{"OFF", "ERROR", "WARN", "INFO", "DEBUG"}[l]
}

// UnmarshalText accepts level names in any case, plus WARNING. It lets
// PROMPTLIFT_LOG_LEVEL be parsed straight into a LogLevel.
func (l *LogLevel) UnmarshalText(text []byte) error {
	name := strings.ToUpper(strings.TrimSpace(string(text)))
	if name == "WARNING" {
		name = "WARN"
	}
	for lvl := LogLevelOff; lvl <= LogLevelDebug; lvl++ {
		if lvl.String() == name {
			*l = lvl
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s", string(text))
}
