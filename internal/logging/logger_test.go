package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/sanspareilsmyn/turbinelens/internal/config"
)

func TestConsoleSplitsByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	sinks := consoleSinks{out: zapcore.AddSync(&out), err: zapcore.AddSync(&errOut)}

	logger, err := newLogger(config.LogConfig{Level: "info", Format: "console"}, sinks)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("dataset loaded")
	logger.Error("pipeline failed")
	require.NoError(t, logger.Sync())

	assert.Contains(t, out.String(), "dataset loaded")
	assert.NotContains(t, out.String(), "hidden")
	assert.NotContains(t, out.String(), "pipeline failed")
	assert.Contains(t, errOut.String(), "pipeline failed")
}

func TestFileLogging(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LogConfig{
		Level:              "debug",
		Format:             "json",
		FileLoggingEnabled: true,
		Directory:          filepath.Join(dir, "logs"),
		Filename:           "run.log",
		MaxSize:            1,
	}

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	logger.Info("written to file")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "logs", "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written to file"`)
	assert.Contains(t, string(data), `"level":"INFO"`)
}

func TestNoOutputs(t *testing.T) {
	_, err := NewLogger(config.LogConfig{Level: "info", Format: "json"})
	assert.ErrorIs(t, err, ErrNoOutputs)
}

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	lvl, err = parseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)
}
