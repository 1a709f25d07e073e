package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")

	logger.SetLevel(LogLevelDebug)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestDefaultLoggerOff(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelOff)
	logger.Error("dropped")
	assert.Empty(t, buf.String())
	assert.Equal(t, LogLevelOff, logger.Level())

	logger.SetLevel(LogLevelError)
	logger.Error("kept")
	assert.Contains(t, buf.String(), "component=promptlift")
	assert.Equal(t, LogLevelError, logger.Level())
}

func TestLogLevelUnmarshalText(t *testing.T) {
	var level LogLevel
	require.NoError(t, level.UnmarshalText([]byte("debug")))
	assert.Equal(t, LogLevelDebug, level)
	assert.Equal(t, "DEBUG", level.String())

	require.NoError(t, level.UnmarshalText([]byte("warning")))
	assert.Equal(t, LogLevelWarn, level)

	assert.Error(t, level.UnmarshalText([]byte("loud")))
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")
	logger.SetLevel(LogLevelDebug)
}

func TestLoggerInterface(t *testing.T) {
	var _ Logger = &MockLogger{}
	var _ Logger = NewNopLogger()
	var _ Logger = NewLogger(LogLevelInfo)
	var _ Logger = NewCaptureLogger()
}

func TestMockLogger(t *testing.T) {
	m := new(MockLogger)
	m.On("Warn", "degraded", mock.Anything).Return()
	m.Warn("degraded", "component", "cache")
	m.AssertExpectations(t)
}

func TestCaptureLogger(t *testing.T) {
	c := NewCaptureLogger()
	c.Warn("one")
	c.Warn("two")
	c.Info("three")
	assert.Equal(t, 2, c.Count("WARN"))
	assert.Len(t, c.Messages(), 3)
}
