// Package events publishes domain events to Kafka
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Event is a publishable domain event. Key determines the Kafka
// partition so events of one aggregate stay ordered.
type Event interface {
	Key() string
}

// Publisher is the producer contract services depend on
type Publisher interface {
	// Publish serializes the event and writes it to the topic
	Publish(ctx context.Context, topic string, event Event) error
	// Close flushes buffered records and releases the connection
	Close()
}

// KafkaPublisher implements Publisher on a franz-go client
type KafkaPublisher struct {
	client *kgo.Client
}

// NewKafkaPublisher creates a producer connected to the given brokers
func NewKafkaPublisher(brokers []string, clientID string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client}, nil
}

// Publish serializes the event and writes it to the topic synchronously
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(event.Key()),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}
	return nil
}

// Close flushes buffered records and releases the connection
func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// NoopPublisher discards events; used when Kafka is disabled
type NoopPublisher struct{}

// Publish discards the event
func (NoopPublisher) Publish(ctx context.Context, topic string, event Event) error { return nil }

// Close does nothing
func (NoopPublisher) Close() {}
