// Package kafka publishes domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"waterdelivery/internal/core/domain/model/event"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// message is the JSON body written for every event.
type message struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	AggregateID string         `json:"aggregateId"`
	OccurredAt  time.Time      `json:"occurredAt"`
	Payload     map[string]any `json:"payload"`
}

// EventPublisher implements ports.EventPublisher over a sarama.SyncProducer.
// Messages are keyed by aggregate id so the events of one request or ticket
// stay ordered within a partition.
type EventPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewEventPublisher wraps an existing producer.
func NewEventPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.Named("kafka"),
	}
}

// NewSyncProducer builds the producer used by NewEventPublisher.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := NewProducerConfig()
	return sarama.NewSyncProducer(brokers, config)
}

// NewProducerConfig returns the producer settings: synchronous sends acknowledged
// by all in-sync replicas.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = 5 * time.Second
	return config
}

// Publish sends events as one batch.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for _, e := range events {
		body, err := json.Marshal(message{
			ID:          e.ID.String(),
			Name:        e.Name,
			AggregateID: e.AggregateID.String(),
			OccurredAt:  e.OccurredAt,
			Payload:     e.Payload,
		})
		if err != nil {
			return fmt.Errorf("failed to encode event %s: %w", e.Name, err)
		}

		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(e.AggregateID.String()),
			Value: sarama.ByteEncoder(body),
			Headers: []sarama.RecordHeader{
				{Key: []byte("event-name"), Value: []byte(e.Name)},
			},
		})
	}

	if err := p.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("failed to send %d events to topic %s: %w", len(msgs), p.topic, err)
	}

	p.logger.Debug("events published", zap.String("topic", p.topic), zap.Int("count", len(msgs)))
	return nil
}

// Close closes the underlying producer.
func (p *EventPublisher) Close() error {
	return p.producer.Close()
}
