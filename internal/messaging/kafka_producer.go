package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaProducer returns an async producer. Delivery failures are reported
// through the logger since callers have already committed.
func NewKafkaProducer(brokers []string, topic string, logger *zap.Logger) *KafkaProducer {
	p := &KafkaProducer{logger: logger}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
		Async:        true,
		Completion:   p.completion,
	}
	return p
}

func (p *KafkaProducer) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
			{Key: "event-action", Value: []byte(event.Action)},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write event to kafka: %w", err)
	}
	return nil
}

func (p *KafkaProducer) completion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	p.logger.Error("kafka delivery failed", zap.Int("messages", len(messages)), zap.Error(err))
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
