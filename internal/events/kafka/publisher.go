package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

var (
	_ model.EventPublisher = (*Publisher)(nil)
	_ model.EventPublisher = (*LogPublisher)(nil)
)

var errNoBrokers = errors.New("kafka publisher requires at least one broker")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// envelope is the wire format of a lifecycle event.
type envelope struct {
	ID         string          `json:"id"`
	Type       model.EventType `json:"type"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    any             `json:"payload"`
}

// Publisher writes lifecycle events to a single topic, keyed for ordering.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates Publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errNoBrokers
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
		},
	}, nil
}

// Publish encodes event and writes it synchronously.
func (p *Publisher) Publish(ctx context.Context, event model.Event) error {
	value, err := encode(event)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// Close flushes pending writes.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encode(event model.Event) ([]byte, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(envelope{
		ID:         uuid.NewString(),
		Type:       event.Type,
		Key:        event.Key,
		OccurredAt: event.OccurredAt,
		Payload:    event.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return value, nil
}

// LogPublisher records events in the log. Used when no brokers are configured.
type LogPublisher struct {
	logger *logger.Logger
}

func NewLogPublisher(logger *logger.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event model.Event) error {
	value, err := encode(event)
	if err != nil {
		return err
	}
	p.logger.Debug("lifecycle event", "type", event.Type, "key", event.Key, "event", string(value))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
