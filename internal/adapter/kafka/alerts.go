// Package kafka publishes high-risk weather alerts to a Kafka topic so
// downstream notifiers (SMS, IVR) can fan them out to farmers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/croppilot/croppilot/internal/advisor"
	"github.com/croppilot/croppilot/internal/config"
)

// AlertWriter produces risk alert events to the alerts topic.
// It implements advisor.AlertPublisher.
type AlertWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewAlertWriter creates a Kafka producer for the configured alerts topic.
func NewAlertWriter(cfg *config.Config, logger *slog.Logger) *AlertWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.AlertsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &AlertWriter{writer: w, logger: logger}
}

// Publish serializes and writes one alert event.
func (w *AlertWriter) Publish(ctx context.Context, alert advisor.RiskAlert) error {
	msg, err := serializeAlert(alert)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *AlertWriter) Close() error {
	return w.writer.Close()
}

// serializeAlert marshals a RiskAlert into a Kafka message keyed by
// coordinate so alerts for the same location land in the same partition.
func serializeAlert(alert advisor.RiskAlert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize risk alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(fmt.Sprintf("%.4f,%.4f", alert.Lat, alert.Lon)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "level", Value: []byte(alert.Level)},
			{Key: "analyzed_at", Value: []byte(alert.AnalyzedAt.Format(time.RFC3339))},
		},
	}, nil
}
