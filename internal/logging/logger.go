// Package logging builds the zap logger used across turbinelens.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sanspareilsmyn/turbinelens/internal/config"
)

var ErrNoOutputs = errors.New("no logging outputs configured (neither console nor file enabled)")

// consoleSinks are the writers behind console output; tests swap them out.
type consoleSinks struct {
	out zapcore.WriteSyncer
	err zapcore.WriteSyncer
}

var stdSinks = consoleSinks{
	out: zapcore.Lock(os.Stdout),
	err: zapcore.Lock(os.Stderr),
}

// NewLogger initializes a zap logger from cfg: colored console output split across
// stdout/stderr, a rotating JSON file, or both.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	return newLogger(cfg, stdSinks)
}

func newLogger(cfg config.LogConfig, sinks consoleSinks) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: %v, defaulting to INFO level\n", err)
		level = zapcore.InfoLevel
	}

	isConsole := strings.EqualFold(cfg.Format, "console")

	var cores []zapcore.Core
	if isConsole {
		cores = append(cores, consoleCores(level, sinks)...)
	}
	if cfg.FileLoggingEnabled {
		fileCore, err := fileCore(cfg, level)
		if err != nil {
			return nil, err
		}
		cores = append(cores, fileCore)
	}
	if len(cores) == 0 {
		return nil, ErrNoOutputs
	}

	opts := []zap.Option{zap.AddCaller()}
	if level == zapcore.DebugLevel || isConsole {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	} else {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), opts...)
	logger.Debug("Zap logger constructed",
		zap.String("final_level", level.String()),
		zap.String("console_format", cfg.Format),
		zap.Bool("file_logging_enabled", cfg.FileLoggingEnabled),
		zap.String("file_path", filepath.Join(cfg.Directory, cfg.Filename)),
	)
	return logger, nil
}

// consoleCores sends everything below Error to out and Error and above to err.
func consoleCores(level zapcore.Level, sinks consoleSinks) []zapcore.Core {
	enc := buildEncoder(true)
	low := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= level && lvl < zapcore.ErrorLevel
	})
	high := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= level && lvl >= zapcore.ErrorLevel
	})
	return []zapcore.Core{
		zapcore.NewCore(enc, sinks.out, low),
		zapcore.NewCore(enc, sinks.err, high),
	}
}

func fileCore(cfg config.LogConfig, level zapcore.Level) (zapcore.Core, error) {
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory '%s': %w", cfg.Directory, err)
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Directory, cfg.Filename),
		MaxSize:    cfg.MaxSize,    // megabytes
		MaxBackups: cfg.MaxBackups, // files
		MaxAge:     cfg.MaxAge,     // days
		Compress:   cfg.Compress,
	}
	return zapcore.NewCore(buildEncoder(false), zapcore.AddSync(rotator), level), nil
}

func parseLevel(levelStr string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(levelStr))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level '%s'", levelStr)
	}
	return level, nil
}

func buildEncoder(console bool) zapcore.Encoder {
	if console {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(ec)
}
