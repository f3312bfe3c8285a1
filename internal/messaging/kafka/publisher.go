package kafka

import (
	"context"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Event is a domain event ready to be written to a topic. Payload is the
// JSON-encoded body.
type Event struct {
	Topic         string
	EventType     string
	AggregateType string
	AggregateID   string
	RequestID     string
	Payload       []byte
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// DefaultPublishTimeout bounds a single publish so a slow broker cannot hold
// the request that triggered it.
const DefaultPublishTimeout = 2 * time.Second

type writerPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

func NewPublisher(writer *kafkago.Writer) Publisher {
	return &writerPublisher{writer: writer, timeout: DefaultPublishTimeout}
}

// Publish writes the event under its own deadline. The caller's cancellation
// is ignored: the write it describes has already been committed.
func (p *writerPublisher) Publish(ctx context.Context, event Event) error {
	if err := ValidateEvent(event); err != nil {
		return err
	}

	timeout := p.timeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, toMessage(event))
}

func toMessage(event Event) kafkago.Message {
	return kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}
}

func ValidateEvent(event Event) error {
	if event.Topic == "" {
		return errors.New("event topic is required")
	}
	if event.EventType == "" {
		return errors.New("event type is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("event payload is required")
	}
	return nil
}
