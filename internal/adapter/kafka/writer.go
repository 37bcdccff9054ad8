// Package kafka publishes cleaned observations to a Kafka topic for
// downstream consumers. Publishing is optional and feature-flagged in
// configuration.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/config"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
)

// Writer produces cleaned observations to a Kafka topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch serializes and publishes observations in a single
// WriteMessages call. Messages are keyed by country/species/year so one
// group's rows stay on one partition.
func (w *Writer) PublishBatch(ctx context.Context, observations []domain.Observation) error {
	if len(observations) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(observations))
	for i := range observations {
		msg, err := serializeToMessage(observations[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish observations: %w", err)
	}
	w.logger.Info("published cleaned observations", "count", len(observations))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an observation into a Kafka message.
func serializeToMessage(o domain.Observation) (kafkago.Message, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize observation: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(o.Key()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "bird_species", Value: []byte(o.Species)},
			{Key: "processed_at", Value: []byte(o.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
