package config

import "errors"

var (
	ErrReadingConfigFile    = errors.New("failed to read config file")
	ErrUnmarshallingConfig  = errors.New("failed to unmarshal config")
	ErrConfigFileMissing    = errors.New("config file not found")
	ErrNegativeTurbineParam = errors.New("turbine parameters must be non-negative")
	ErrEmptyKafkaBrokers    = errors.New("kafka brokers list cannot be empty when kafka is enabled")
	ErrEmptyKafkaTopic      = errors.New("kafka topic cannot be empty when kafka is enabled")
	ErrEmptyMetricsJobName  = errors.New("metrics jobName cannot be empty when a pushgateway is set")
)
