package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkaGo "github.com/segmentio/kafka-go"
)

// Broker is a Kafka-backed publisher. A single Broker is created at process
// start and shared by every service; the underlying writer is safe for
// concurrent use.
type Broker struct {
	writer *kafkaGo.Writer
}

// NewBroker creates a Kafka publisher. The topic is chosen per message, so
// one writer serves every topic the service publishes to.
func NewBroker(brokers []string, clientID string) *Broker {
	return &Broker{
		writer: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(brokers...),
			Balancer: &kafkaGo.LeastBytes{},
			Transport: &kafkaGo.Transport{
				ClientID: clientID,
			},
		},
	}
}

func (b *Broker) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = b.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to write message to %s: %w", topic, err)
	}

	slog.Debug("Message sent to Kafka", "topic", topic, "key", key)
	return nil
}

// Close flushes pending messages and releases the writer.
func (b *Broker) Close() error {
	return b.writer.Close()
}
