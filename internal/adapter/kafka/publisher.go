// Package kafka publishes finished report bundles to a sink topic for
// downstream consumers. The publisher is feature-flagged; the service runs
// fine without it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/firewatch-kr/wildfire-report-service/internal/config"
	"github.com/firewatch-kr/wildfire-report-service/internal/observability"
	"github.com/firewatch-kr/wildfire-report-service/internal/report"
)

// Publisher produces one message per finished report build.
type Publisher struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, metrics: metrics, logger: logger}
}

// PublishBundle serializes and publishes one report bundle. The build ID is
// the message key so replays of the same build coalesce per partition.
func (p *Publisher) PublishBundle(ctx context.Context, bundle *report.Bundle) error {
	msg, err := serializeBundle(bundle)
	if err != nil {
		p.metrics.PublishErrors.Inc()
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.PublishErrors.Inc()
		return fmt.Errorf("publish bundle %s: %w", bundle.BuildID, err)
	}
	p.metrics.BundlesPublished.Inc()
	p.logger.Info("bundle published", "build_id", bundle.BuildID, "sections", bundle.SectionCount())
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeBundle marshals a bundle into a Kafka message.
func serializeBundle(bundle *report.Bundle) (kafkago.Message, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize bundle: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(bundle.BuildID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "generated_at", Value: []byte(bundle.GeneratedAt.Format(time.RFC3339))},
			{Key: "section_count", Value: []byte(strconv.Itoa(bundle.SectionCount()))},
		},
	}, nil
}
