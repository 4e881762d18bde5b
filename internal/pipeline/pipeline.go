// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sanspareilsmyn/turbinelens/internal/analysis"
	"github.com/sanspareilsmyn/turbinelens/internal/config"
	"github.com/sanspareilsmyn/turbinelens/internal/ingest"
	"github.com/sanspareilsmyn/turbinelens/internal/report"
)

// ReportPublisher ships a finished report somewhere outside the process.
type ReportPublisher interface {
	Publish(ctx context.Context, r *report.Report) error
	Close() error
}

// Pipeline orchestrates the stages: ingest, enrichment, aggregation, then metrics and publishing.
type Pipeline struct {
	cfg       *config.Config
	metrics   *MetricsRecorder
	publisher ReportPublisher
	logger    *zap.Logger
}

// New creates and wires up a pipeline. Kafka publishing is only set up when enabled.
func New(cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	initLogger := logger.Named("pipeline.init")
	initLogger.Debug("Creating pipeline components...")

	p := &Pipeline{
		cfg:     cfg,
		metrics: NewMetricsRecorder(cfg.Metrics, logger.Named("metrics")),
		logger:  logger.Named("pipeline"),
	}

	if cfg.Kafka.Enabled {
		pub, err := NewPublisher(cfg.Kafka, logger.Named("publisher"))
		if err != nil {
			initLogger.Error("Failed to create publisher", zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrPublisherCreationFailed, err)
		}
		p.publisher = pub
		initLogger.Debug("Publisher created")
	}

	initLogger.Info("Pipeline instance created successfully",
		zap.Bool("kafka_enabled", cfg.Kafka.Enabled),
		zap.Bool("metrics_push_enabled", cfg.Metrics.PushGatewayURL != ""),
	)
	return p, nil
}

// WithPublisher replaces the report publisher.
func (p *Pipeline) WithPublisher(pub ReportPublisher) *Pipeline {
	p.publisher = pub
	return p
}

// Metrics exposes the recorder so callers can inspect or serve its registry.
func (p *Pipeline) Metrics() *MetricsRecorder {
	return p.metrics
}

// Run processes one input file end to end. Any load or analysis failure aborts the run with no
// partial report. Metrics and publish failures are returned alongside the finished report.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*report.Report, error) {
	sugar := p.logger.Sugar()
	if inputPath == "" {
		return nil, ErrNoInput
	}

	sugar.Infow("Loading dataset", "path", inputPath, "sheet", p.cfg.Input.Sheet)
	samples, err := p.load(inputPath)
	if err != nil {
		p.logger.Error("Dataset rejected", zap.String("path", inputPath), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrIngestFailed, err)
	}
	sugar.Infow("Dataset loaded", "path", inputPath, "records", len(samples))

	rep, err := Analyze(ctx, filepath.Base(inputPath), samples, p.cfg.Turbine.Constants())
	if err != nil {
		p.logger.Error("Analysis failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	p.logStats(rep)

	p.metrics.Observe(rep)
	if err := p.metrics.Push(ctx, rep.Source); err != nil {
		return rep, err
	}

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, rep); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

func (p *Pipeline) load(path string) ([]analysis.Sample, error) {
	tbl, err := ingest.ReadFile(path, p.cfg.Input.Sheet)
	if err != nil {
		return nil, err
	}
	return tbl.Samples()
}

// Analyze enriches samples and runs the independent aggregations. Each aggregation writes only
// its own field of the report, so they run concurrently without sharing state.
func Analyze(ctx context.Context, source string, samples []analysis.Sample, c analysis.TurbineConstants) (*report.Report, error) {
	enriched := analysis.EnrichAll(samples, c)
	rep := &report.Report{
		Source:    source,
		Constants: c,
		Samples:   enriched,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rep.WindSpeed = analysis.PowerByWindSpeed(enriched)
		rep.PowerFactor = analysis.PowerFactorByWindSpeed(enriched)
		return ctx.Err()
	})
	g.Go(func() error {
		minutes, err := analysis.AggregateByMinute(enriched)
		if err != nil {
			return err
		}
		rep.Minutes = minutes
		return ctx.Err()
	})
	g.Go(func() error {
		rep.Timeline = analysis.ExtractStatusTimeline(samples)
		rep.StatusCodes = analysis.DistinctStatusCodes(samples)
		return ctx.Err()
	})
	g.Go(func() error {
		rep.Summary = analysis.Summarize(enriched)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rep, nil
}

func (p *Pipeline) logStats(rep *report.Report) {
	s := rep.Summary
	p.logger.Info("Dataset analysed",
		zap.String("source", rep.Source),
		zap.Int("records", s.Records),
		zap.Float64("max_power_dc_kw", s.MaxPowerDC),
		zap.Float64("max_power_ac_kw", s.MaxPowerAC),
		zap.Float64("average_efficiency_pct", s.AverageEfficiency),
		zap.Int("wind_speed_buckets", len(rep.WindSpeed)),
		zap.Int("power_factor_buckets", len(rep.PowerFactor)),
		zap.Int("minute_buckets", len(rep.Minutes)),
		zap.Int("status_codes_with_runs", len(rep.Timeline)),
	)
	if s.OverUnitySamples > 0 {
		p.logger.Warn("Samples at or above 100% efficiency excluded from the average",
			zap.String("source", rep.Source),
			zap.Int("count", s.OverUnitySamples),
		)
	}
	for _, runs := range rep.Timeline {
		p.logger.Debug("Status runs",
			zap.Int("code", runs.Code),
			zap.String("description", runs.Description),
			zap.Int("intervals", len(runs.Intervals)),
		)
	}
}

// Close releases the publisher, if any.
func (p *Pipeline) Close() error {
	if p.publisher == nil {
		return nil
	}
	p.logger.Debug("Closing publisher")
	return p.publisher.Close()
}
