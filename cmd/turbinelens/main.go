package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sanspareilsmyn/turbinelens/internal/config"
	"github.com/sanspareilsmyn/turbinelens/internal/logging"
	"github.com/sanspareilsmyn/turbinelens/internal/pipeline"
	"github.com/sanspareilsmyn/turbinelens/internal/report"
)

var (
	configFile = flag.String("config", "configs/config.dev.yaml", "Path to the configuration file")
	inputFile  = flag.String("input", "", "Turbine log (.xlsx or .csv); overrides input.path")
	format     = flag.String("format", "text", "Report format: text or json")
	outFile    = flag.String("out", "", "Write the report to this file instead of stdout")
	logger     *zap.Logger
)

func main() {
	// Initialize Configuration
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration from %s: %v\n", *configFile, err)
		os.Exit(1)
	}
	if *inputFile != "" {
		cfg.Input.Path = *inputFile
	}

	// Initialize Logger
	var logErr error
	logger, logErr = logging.NewLogger(cfg.Log)
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", logErr)
		os.Exit(1)
	}

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	defer func() {
		_ = logger.Sync() // Flush buffered logs on exit
	}()

	sugar := logger.Sugar()
	sugar.Infow("Logger initialized",
		"level", cfg.Log.Level,
		"format", cfg.Log.Format,
	)
	sugar.Infow("Configuration loaded successfully", "path", *configFile)

	// Initialize Pipeline
	pipe, err := pipeline.New(cfg, logger)
	if err != nil {
		sugar.Errorw("Failed to initialize pipeline", "error", err)
		return 1
	}
	defer func() {
		if err := pipe.Close(); err != nil {
			sugar.Warnw("Pipeline did not close cleanly", "error", err)
		}
	}()

	// Handle Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run Pipeline
	rep, runErr := pipe.Run(ctx, cfg.Input.Path)
	if rep != nil {
		if err := writeReport(rep, *format, *outFile); err != nil {
			sugar.Errorw("Failed to write report", "format", *format, "error", err)
			return 1
		}
	}

	// Evaluate Pipeline Result
	finalLogLevel := zapcore.InfoLevel
	outcome := "completed"
	var finalErrorField = zap.Skip()
	code := 0

	switch {
	case runErr == nil:
	case errors.Is(runErr, context.Canceled):
		outcome = "cancelled"
		code = 1
	default:
		outcome = "failed"
		finalLogLevel = zapcore.ErrorLevel
		finalErrorField = zap.Error(runErr)
		code = 1
	}

	logger.Log(finalLogLevel, fmt.Sprintf("Analysis %s.", outcome),
		zap.String("input", cfg.Input.Path),
		finalErrorField,
	)
	return code
}

func writeReport(rep *report.Report, format, path string) error {
	if path == "" {
		return rep.Write(os.Stdout, format)
	}
	return rep.WriteFile(path, format)
}
