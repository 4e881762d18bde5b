package pipeline

import "errors"

var (
	ErrNoInput                 = errors.New("no input file given")
	ErrIngestFailed            = errors.New("failed to load dataset")
	ErrAnalysisFailed          = errors.New("analysis failed")
	ErrInvalidKafkaConfig      = errors.New("invalid Kafka configuration provided")
	ErrPublisherCreationFailed = errors.New("failed to create publisher")
	ErrPublishFailed           = errors.New("failed to publish report")
	ErrEncodeReportFailed      = errors.New("failed to encode report")
	ErrMetricsPushFailed       = errors.New("failed to push metrics")
)
