package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teilomillet/promptlift/config"
	"github.com/teilomillet/promptlift/utils"
)

func TestLogLevelFromEnvironment(t *testing.T) {
	for _, tc := range []struct {
		value string
		want  utils.LogLevel
	}{
		{"debug", utils.LogLevelDebug},
		{"Warning", utils.LogLevelWarn},
		{"OFF", utils.LogLevelOff},
	} {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("PROMPTLIFT_LOG_LEVEL", tc.value)
			cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.LogLevel)

			logger, ok := cfg.NewLogger().(*utils.DefaultLogger)
			require.True(t, ok)
			assert.Equal(t, tc.want, logger.Level())
		})
	}
}

func TestInvalidLogLevelRejected(t *testing.T) {
	t.Setenv("PROMPTLIFT_LOG_LEVEL", "chatty")
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.ErrorContains(t, err, "invalid log level")
}

func TestSetLoggerOverridesLogLevel(t *testing.T) {
	capture := utils.NewCaptureLogger()
	cfg := config.NewConfig()
	config.ApplyOptions(cfg, config.SetLogLevel(utils.LogLevelOff), config.SetLogger(capture))

	logger := cfg.NewLogger()
	assert.Same(t, capture, logger)
	logger.Warn("store degraded", "backend", "redis")
	assert.Equal(t, 1, capture.Count("WARN"))
}

func TestDefaultLogLevelIsWarn(t *testing.T) {
	logger, ok := config.NewConfig().NewLogger().(*utils.DefaultLogger)
	require.True(t, ok)
	assert.Equal(t, utils.LogLevelWarn, logger.Level())
}
