package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/sanspareilsmyn/turbinelens/internal/analysis"
)

const (
	defaultAirDensity     = 1.225
	defaultRotorDiameter  = 10.0
	defaultRotorHeight    = 10.0
	defaultMetricsJobName = "turbinelens"
	defaultKafkaTopic     = "turbinelens-reports"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultLogFileEnabled = false
	defaultLogDirectory   = "log"
	defaultLogFilename    = "turbinelens.log"
	defaultLogMaxSizeMB   = 100
	defaultLogMaxBackups  = 3
	defaultLogMaxAgeDays  = 7
	defaultLogCompress    = false

	// Environment variable prefix
	envPrefix = "TURBINELENS"
)

type Config struct {
	Turbine TurbineConfig `mapstructure:"turbine"`
	Input   InputConfig   `mapstructure:"input"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Log     LogConfig     `mapstructure:"log"`
}

type TurbineConfig struct {
	AirDensity    float64 `mapstructure:"airDensity"`    // kg/m^3
	RotorDiameter float64 `mapstructure:"rotorDiameter"` // m
	RotorHeight   float64 `mapstructure:"rotorHeight"`   // m
}

// Constants converts the turbine section to the analysis parameters.
func (t TurbineConfig) Constants() analysis.TurbineConstants {
	return analysis.TurbineConstants{
		AirDensity:    t.AirDensity,
		RotorDiameter: t.RotorDiameter,
		RotorHeight:   t.RotorHeight,
	}
}

type InputConfig struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"` // first sheet when empty
}

type MetricsConfig struct {
	PushGatewayURL string `mapstructure:"pushGatewayURL"` // disabled when empty
	JobName        string `mapstructure:"jobName"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type LogConfig struct {
	Level              string `mapstructure:"level"`
	Format             string `mapstructure:"format"`
	FileLoggingEnabled bool   `mapstructure:"fileLoggingEnabled"`
	Directory          string `mapstructure:"directory"`
	Filename           string `mapstructure:"filename"`
	MaxSize            int    `mapstructure:"maxSize"`    // Max size in MB
	MaxBackups         int    `mapstructure:"maxBackups"` // Max backup files
	MaxAge             int    `mapstructure:"maxAge"`     // Max days to retain
	Compress           bool   `mapstructure:"compress"`   // Compress rotated files?
}

// Load initializes viper, reads config, applies defaults, unmarshals, and validates.
// An empty configPath skips the file and uses defaults plus environment overrides.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	configureViper(v, configPath)

	// Set default values before reading config source .yaml
	setDefaults(v)

	if configPath != "" {
		if err := readConfigFile(v); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshallingConfig, err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// configureViper sets up viper instance for file and environment variables.
func configureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults applies default configuration values using Viper.
// Every key gets a default so AutomaticEnv can override keys absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("turbine.airDensity", defaultAirDensity)
	v.SetDefault("turbine.rotorDiameter", defaultRotorDiameter)
	v.SetDefault("turbine.rotorHeight", defaultRotorHeight)
	v.SetDefault("input.path", "")
	v.SetDefault("input.sheet", "")
	v.SetDefault("metrics.pushGatewayURL", "")
	v.SetDefault("metrics.jobName", defaultMetricsJobName)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", defaultKafkaTopic)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("log.fileLoggingEnabled", defaultLogFileEnabled)
	v.SetDefault("log.directory", defaultLogDirectory)
	v.SetDefault("log.filename", defaultLogFilename)
	v.SetDefault("log.maxSize", defaultLogMaxSizeMB)
	v.SetDefault("log.maxBackups", defaultLogMaxBackups)
	v.SetDefault("log.maxAge", defaultLogMaxAgeDays)
	v.SetDefault("log.compress", defaultLogCompress)
}

// readConfigFile attempts to read the configuration file specified in viper.
func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) || errors.Is(err, fs.ErrNotExist) {
			return ErrConfigFileMissing
		}
		return fmt.Errorf("%w: %w", ErrReadingConfigFile, err)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	t := cfg.Turbine
	for _, p := range []float64{t.AirDensity, t.RotorDiameter, t.RotorHeight} {
		if p < 0 || math.IsNaN(p) {
			return ErrNegativeTurbineParam
		}
	}
	if cfg.Kafka.Enabled {
		if len(cfg.Kafka.Brokers) == 0 {
			return ErrEmptyKafkaBrokers
		}
		if cfg.Kafka.Topic == "" {
			return ErrEmptyKafkaTopic
		}
	}
	if cfg.Metrics.PushGatewayURL != "" && cfg.Metrics.JobName == "" {
		return ErrEmptyMetricsJobName
	}
	return nil
}
