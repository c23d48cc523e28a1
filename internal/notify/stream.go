package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"inspection-service/internal/logging"
	"inspection-service/internal/metrics"
	"inspection-service/internal/models"
)

// StreamChannel publishes every closure notice as JSON to a Kafka topic so
// downstream consumers (dashboards, repair planning) can react to closures.
type StreamChannel struct {
	writer *kafka.Writer
	logger *logging.Logger
}

func NewStreamChannel(broker, topic string, logger *logging.Logger) *StreamChannel {
	return &StreamChannel{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(broker),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			WriteTimeout:           5 * time.Second,
			AllowAutoTopicCreation: true,
		},
		logger: logger,
	}
}

func (c *StreamChannel) Name() string { return "stream" }

func (c *StreamChannel) Update(notice models.ClosureNotice) {
	value, err := json.Marshal(notice)
	if err != nil {
		metrics.NotifyFailuresTotal.WithLabelValues(c.Name()).Inc()
		c.logger.Errorf("Failed to marshal closure notice: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(notice.SeismographID)),
		Value: value,
	}
	if err := c.writer.WriteMessages(ctx, msg); err != nil {
		metrics.NotifyFailuresTotal.WithLabelValues(c.Name()).Inc()
		c.logger.Errorf("Failed to publish closure notice: %v", err)
		return
	}
	c.logger.Infof("Closure notice published to topic %s", c.writer.Topic)
}

func (c *StreamChannel) Close() error {
	return c.writer.Close()
}
