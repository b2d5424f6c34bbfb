package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/journal_workflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/segmentio/kafka-go"
)

// EntryEventProducer publishes journal entry lifecycle events to Kafka, keyed
// by entry ID so every event of one entry lands on the same partition in order.
type EntryEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

var _ portssvc.EntryEventPublisher = (*EntryEventProducer)(nil)

// NewEntryEventProducer creates a synchronous writer for topic. The caller is
// expected to publish from a worker goroutine.
func NewEntryEventProducer(logger *slog.Logger, brokers []string, topic string, writeTimeout time.Duration) (*EntryEventProducer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka entry events topic is not configured")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}

	return &EntryEventProducer{
		logger: logger,
		writer: writer,
		topic:  topic,
	}, nil
}

// entryEventMessage is the wire shape of a published event.
type entryEventMessage struct {
	EventID    string    `json:"eventID"`
	EntryID    string    `json:"entryID"`
	Operation  string    `json:"operation"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus,omitempty"`
	ActorID    string    `json:"actorID"`
	Reason     *string   `json:"reason,omitempty"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"occurredAt"`
}

func toMessage(e domain.EntryEvent) entryEventMessage {
	return entryEventMessage{
		EventID:    e.EventID,
		EntryID:    e.EntryID,
		Operation:  string(e.Operation),
		FromStatus: string(e.FromStatus),
		ToStatus:   string(e.ToStatus),
		ActorID:    e.ActorID,
		Reason:     e.Reason,
		Version:    e.Version,
		OccurredAt: e.OccurredAt,
	}
}

// PublishEntryEvent writes one event and waits for the broker acknowledgement.
func (p *EntryEventProducer) PublishEntryEvent(ctx context.Context, event domain.EntryEvent) error {
	value, err := json.Marshal(toMessage(event))
	if err != nil {
		return fmt.Errorf("failed to marshal entry event %s: %w", event.EventID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EntryID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "operation", Value: []byte(event.Operation)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish entry event %s to %s: %w", event.EventID, p.topic, err)
	}

	p.logger.Debug("Published entry event",
		slog.String("topic", p.topic),
		slog.String("entry_id", event.EntryID),
		slog.String("operation", string(event.Operation)),
	)
	return nil
}

// Close flushes and closes the writer.
func (p *EntryEventProducer) Close() error {
	p.logger.Info("Closing entry event producer", slog.String("topic", p.topic))
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
