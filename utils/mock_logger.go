package utils

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockLogger is a testify mock for expectation-style logger assertions.
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Info(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Warn(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Error(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) SetLevel(level LogLevel) {
	m.Called(level)
}

// LogMessage is one record captured by CaptureLogger.
type LogMessage struct {
	Level   string
	Message string
	Args    []any
}

// CaptureLogger records every message regardless of level.
type CaptureLogger struct {
	mu       sync.Mutex
	messages []LogMessage
}

func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{}
}

func (c *CaptureLogger) record(level, msg string, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, LogMessage{Level: level, Message: msg, Args: args})
}

func (c *CaptureLogger) Debug(msg string, args ...any) { c.record("DEBUG", msg, args) }
func (c *CaptureLogger) Info(msg string, args ...any)  { c.record("INFO", msg, args) }
func (c *CaptureLogger) Warn(msg string, args ...any)  { c.record("WARN", msg, args) }
func (c *CaptureLogger) Error(msg string, args ...any) { c.record("ERROR", msg, args) }
func (c *CaptureLogger) SetLevel(LogLevel)             {}

// Messages returns a copy of the captured records.
func (c *CaptureLogger) Messages() []LogMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LogMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Count returns how many records were captured at the given level.
func (c *CaptureLogger) Count(level string) int {
	n := 0
	for _, m := range c.Messages() {
		if m.Level == level {
			n++
		}
	}
	return n
}
