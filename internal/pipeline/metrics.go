package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"

	"github.com/sanspareilsmyn/turbinelens/internal/config"
	"github.com/sanspareilsmyn/turbinelens/internal/report"
)

// MetricsRecorder mirrors a report into Prometheus gauges and pushes them to a Pushgateway.
// A batch run is too short-lived to be scraped, hence the push.
type MetricsRecorder struct {
	cfg      config.MetricsConfig
	registry *prometheus.Registry
	logger   *zap.Logger

	records            prometheus.Gauge
	maxPower           *prometheus.GaugeVec
	averageEfficiency  prometheus.Gauge
	overUnitySamples   prometheus.Gauge
	windSpeedRange     *prometheus.GaugeVec
	powerCurve         *prometheus.GaugeVec
	powerCoefficient   *prometheus.GaugeVec
	powerFactor        *prometheus.GaugeVec
	statusIntervals    *prometheus.GaugeVec
	statusActiveSecond *prometheus.GaugeVec
	lastRun            prometheus.Gauge
}

// NewMetricsRecorder registers the turbinelens gauges on a private registry.
func NewMetricsRecorder(cfg config.MetricsConfig, logger *zap.Logger) *MetricsRecorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &MetricsRecorder{
		cfg:      cfg,
		registry: reg,
		logger:   logger,
		records: factory.NewGauge(prometheus.GaugeOpts{
			Name: "turbinelens_dataset_records",
			Help: "Number of samples in the analysed dataset.",
		}),
		maxPower: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "turbinelens_max_power_kw",
			Help: "Maximum power observed in the dataset.",
		}, []string{"side"}), // side: dc, ac
		averageEfficiency: factory.NewGauge(prometheus.GaugeOpts{
			Name: "turbinelens_average_efficiency_percent",
			Help: "Mean DC/AC efficiency excluding over-unity and zero-power samples.",
		}),
		overUnitySamples: factory.NewGauge(prometheus.GaugeOpts{
			Name: "turbinelens_over_unity_samples",
			Help: "Samples with efficiency at or above 100 percent.",
		}),
		windSpeedRange: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "turbinelens_wind_speed_mps",
			Help: "Observed wind speed bounds.",
		}, []string{"bound"}), // bound: min, max
		powerCurve: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "turbinelens_power_curve_kw",
			Help: "Mean power per 0.1 m/s wind speed bucket.",
		}, []string{"wind_speed", "side"}),
		powerCoefficient: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "turbinelens_power_coefficient",
			Help: "Mean Cp per 0.1 m/s wind speed bucket.",
		}, []string{"wind_speed"}),
		powerFactor: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "turbinelens_power_factor_ratio",
			Help: "Mean DC/AC ratio per whole m/s wind speed bucket.",
		}, []string{"wind_speed"}),
		statusIntervals: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "turbinelens_status_intervals",
			Help: "Number of contiguous runs per non-nominal status code.",
		}, []string{"code", "description"}),
		statusActiveSecond: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "turbinelens_status_active_seconds",
			Help: "Time covered by runs of each non-nominal status code, first to last sample.",
		}, []string{"code", "description"}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "turbinelens_last_run_timestamp_seconds",
			Help: "Unix time of the last completed analysis.",
		}),
	}

	logger.Debug("Metrics recorder initialized", zap.Bool("push_enabled", cfg.PushGatewayURL != ""))
	return m
}

// Registry returns the private registry holding the gauges.
func (m *MetricsRecorder) Registry() *prometheus.Registry {
	return m.registry
}

// Observe replaces every gauge with the figures of r.
func (m *MetricsRecorder) Observe(r *report.Report) {
	s := r.Summary

	m.records.Set(float64(s.Records))
	m.maxPower.WithLabelValues("dc").Set(s.MaxPowerDC)
	m.maxPower.WithLabelValues("ac").Set(s.MaxPowerAC)
	m.averageEfficiency.Set(s.AverageEfficiency)
	m.overUnitySamples.Set(float64(s.OverUnitySamples))
	m.windSpeedRange.WithLabelValues("min").Set(s.MinWindSpeed)
	m.windSpeedRange.WithLabelValues("max").Set(s.MaxWindSpeed)

	m.powerCurve.Reset()
	m.powerCoefficient.Reset()
	for _, b := range r.WindSpeed {
		ws := strconv.FormatFloat(b.WindSpeed, 'f', 1, 64)
		m.powerCurve.WithLabelValues(ws, "dc").Set(b.MeanPowerDC)
		m.powerCurve.WithLabelValues(ws, "ac").Set(b.MeanPowerAC)
		m.powerCoefficient.WithLabelValues(ws).Set(b.MeanPowerCoefficient)
	}

	m.powerFactor.Reset()
	for _, b := range r.PowerFactor {
		m.powerFactor.WithLabelValues(strconv.Itoa(b.WindSpeed)).Set(b.MeanRatio)
	}

	m.statusIntervals.Reset()
	m.statusActiveSecond.Reset()
	for _, runs := range r.Timeline {
		code := strconv.Itoa(runs.Code)
		var active time.Duration
		for _, iv := range runs.Intervals {
			active += iv.End.Duration() - iv.Start.Duration()
		}
		m.statusIntervals.WithLabelValues(code, runs.Description).Set(float64(len(runs.Intervals)))
		m.statusActiveSecond.WithLabelValues(code, runs.Description).Set(active.Seconds())
	}

	m.lastRun.SetToCurrentTime()
}

// Push sends the registry to the configured Pushgateway, grouped by source file.
// It is a no-op when no gateway is configured.
func (m *MetricsRecorder) Push(ctx context.Context, source string) error {
	if m.cfg.PushGatewayURL == "" {
		return nil
	}

	pusher := push.New(m.cfg.PushGatewayURL, m.cfg.JobName).
		Gatherer(m.registry).
		Grouping("source", source)
	if err := pusher.PushContext(ctx); err != nil {
		m.logger.Error("Failed to push metrics",
			zap.String("gateway", m.cfg.PushGatewayURL),
			zap.String("job", m.cfg.JobName),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrMetricsPushFailed, err)
	}

	m.logger.Info("Metrics pushed",
		zap.String("gateway", m.cfg.PushGatewayURL),
		zap.String("job", m.cfg.JobName),
		zap.String("source", source),
	)
	return nil
}
