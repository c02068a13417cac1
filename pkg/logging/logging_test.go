package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestGetBeforeSetup(t *testing.T) {
	saved := Logger
	t.Cleanup(func() { Logger = saved })

	Logger = nil
	assert.NotNil(t, Get())
}

func TestSetup(t *testing.T) {
	saved := Logger
	t.Cleanup(func() {
		Logger = saved
		zap.ReplaceGlobals(zap.NewNop())
	})

	require.NoError(t, Setup(false, "srccat", "test"))
	require.NotNil(t, Logger)
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
	assert.Same(t, Logger, zap.L())

	require.NoError(t, Setup(true, "srccat", "test"))
	assert.True(t, Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestConfig(t *testing.T) {
	prod := Config(false, "srccat", "1.0.0")
	assert.Equal(t, zapcore.InfoLevel, prod.Level.Level())
	assert.Equal(t, "json", prod.Encoding)
	assert.Nil(t, prod.Sampling)
	assert.Equal(t, []string{"stderr"}, prod.OutputPaths)
	assert.Equal(t, map[string]interface{}{"appName": "srccat", "appVersion": "1.0.0"}, prod.InitialFields)

	dev := Config(true, "srccat", "1.0.0")
	assert.Equal(t, zapcore.DebugLevel, dev.Level.Level())
	assert.Equal(t, "console", dev.Encoding)
	assert.Equal(t, []string{"stderr"}, dev.OutputPaths)
}
