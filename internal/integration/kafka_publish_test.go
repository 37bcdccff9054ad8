//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/IntroToProgrammingSDU/bird-climate-etl/internal/adapter/kafka"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/config"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/domain"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/frame"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/observability"
	"github.com/IntroToProgrammingSDU/bird-climate-etl/internal/pipeline"
)

const testTopic = "cleaned-bird-observations"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPublishCleanedObservations runs the cleaning pipeline over a small
// raw dataset and publishes the result through the Kafka writer, then
// consumes the topic and verifies keys, headers, and payloads.
func TestPublishCleanedObservations(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaEnabled: true,
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
	}

	// Raw input with a duplicate and ragged text, cleaned before publish.
	raw, err := frame.New("country", "bird_species", "year", "population", "temperature", "precipitation", "shift_km", "traffic")
	require.NoError(t, err)
	rows := [][]frame.Value{
		{frame.String("denmark"), frame.String("  arctic tern"), frame.Int(2001), frame.Int(1200), frame.Float(8.5), frame.Float(700), frame.Float(12), frame.Int(300)},
		{frame.String("denmark"), frame.String("  arctic tern"), frame.Int(2001), frame.Int(1200), frame.Float(8.5), frame.Float(700), frame.Float(12), frame.Int(300)},
		{frame.String("norway"), frame.String("osprey"), frame.Int(2002), frame.Int(400), frame.Float(6.0), frame.Float(880), frame.Float(7), frame.Int(160)},
	}
	for _, row := range rows {
		require.NoError(t, raw.AppendRow(row...))
	}

	cleaner := pipeline.NewCleaner(pipeline.DefaultOptions(), discardLogger(), observability.NewMetricsForTesting())
	cleaned, report, err := cleaner.Run(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Dedupe.Duplicates)

	observations := pipeline.ToObservations(cleaned)
	require.Len(t, observations, 2)

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.PublishBatch(ctx, observations))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]domain.Observation, len(observations))
	headers := make(map[string]map[string]string, len(observations))
	for len(received) < len(observations) {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from topic")

		var o domain.Observation
		require.NoError(t, json.Unmarshal(msg.Value, &o))
		received[string(msg.Key)] = o

		h := make(map[string]string, len(msg.Headers))
		for _, hdr := range msg.Headers {
			h[hdr.Key] = string(hdr.Value)
		}
		headers[string(msg.Key)] = h
	}

	tern, ok := received["Denmark|Arctic Tern|2001"]
	require.True(t, ok, "expected cleaned Arctic Tern observation")
	assert.Equal(t, "Denmark", tern.Country)
	assert.Equal(t, "Arctic Tern", tern.Species)
	require.NotNil(t, tern.Population)
	assert.Equal(t, 1200.0, *tern.Population)

	h := headers["Denmark|Arctic Tern|2001"]
	assert.Equal(t, "Arctic Tern", h["bird_species"])
	_, err = time.Parse(time.RFC3339, h["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")

	_, ok = received["Norway|Osprey|2002"]
	assert.True(t, ok, "expected cleaned Osprey observation")
}
