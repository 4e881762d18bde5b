// internal/pipeline/publisher.go
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sanspareilsmyn/turbinelens/internal/config"
	"github.com/sanspareilsmyn/turbinelens/internal/report"
)

type kafkaZapLogger struct {
	log *zap.Logger
}

func (l kafkaZapLogger) Printf(msg string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(msg, args...))
}

type kafkaZapErrorLogger struct {
	log *zap.Logger
}

func (l kafkaZapErrorLogger) Printf(msg string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(msg, args...))
}

// messageWriter is the part of kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes finished reports as JSON to a Kafka topic, keyed by source file.
type Publisher struct {
	writer messageWriter
	cfg    config.KafkaConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewPublisher creates and configures a Kafka-backed publisher.
func NewPublisher(cfg config.KafkaConfig, logger *zap.Logger) (*Publisher, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		logger.Error("Kafka configuration validation failed",
			zap.Strings("brokers", cfg.Brokers),
			zap.String("topic", cfg.Topic),
		)
		return nil, ErrInvalidKafkaConfig
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Logger:       kafkaZapLogger{logger.Named("kafka-writer").WithOptions(zap.AddCallerSkip(1))},
		ErrorLogger:  kafkaZapErrorLogger{logger.Named("kafka-writer-error").WithOptions(zap.AddCallerSkip(1))},
	}

	logger.Info("Kafka publisher created",
		zap.String("topic", cfg.Topic),
		zap.Strings("brokers", cfg.Brokers),
	)
	return newPublisher(w, cfg, logger), nil
}

func newPublisher(w messageWriter, cfg config.KafkaConfig, logger *zap.Logger) *Publisher {
	return &Publisher{writer: w, cfg: cfg, logger: logger, now: time.Now}
}

// Publish encodes r and writes it in a single message. It blocks until the brokers acknowledge
// the write or ctx is done.
func (p *Publisher) Publish(ctx context.Context, r *report.Report) error {
	value, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeReportFailed, err)
	}

	msg := kafka.Message{
		Key:   []byte(r.Source),
		Value: value,
		Time:  p.now(),
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Error writing report to Kafka",
			zap.String("topic", p.cfg.Topic),
			zap.String("source", r.Source),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	p.logger.Info("Report published",
		zap.String("topic", p.cfg.Topic),
		zap.String("source", r.Source),
		zap.Int("bytes", len(value)),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	p.logger.Debug("Closing Kafka publisher...")
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer cleanly", zap.Error(err))
		return err
	}
	return nil
}
