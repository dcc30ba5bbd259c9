package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gradebook.log")
	logger, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("student added", zap.String("id", "s1"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"student added"`)
	assert.Contains(t, string(data), `"id":"s1"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewDebugOverridesLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradebook.log")
	logger, err := New(Options{Level: "error", File: path, Debug: true})
	require.NoError(t, err)
	logger.Debug("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestNewWithoutFileIsNop(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	level, err = ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	_, err = ParseLevel("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")

	_, err = New(Options{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}
