package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Publisher is the narrow surface services depend on. A nil *Producer
// satisfies it as a no-op, so event streaming stays optional.
type Publisher interface {
	Publish(topic, eventType string, key, payload []byte)
}

type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	service string
	closeCh chan struct{}
}

func NewProducer(brokers []string, service string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		service: service,
		closeCh: make(chan struct{}),
	}
}

// Start runs the writer loop until ctx is cancelled or Close is called.
// The inbox is closed only by Close; the loop owns the writer and closeCh,
// so mixing cancellation and Close cannot double-close anything.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer func() {
			_ = p.w.Close()
			close(p.closeCh)
		}()
		for {
			select {
			case <-ctx.Done():
				p.flush()
				return
			case m, ok := <-p.inbox:
				if !ok {
					return
				}
				if err := p.w.WriteMessages(context.Background(), m); err != nil {
					log.Warn().Err(err).Str("topic", m.Topic).Msg("event publish failed")
				}
			}
		}
	}()
}

// flush hands whatever is already buffered to the writer without waiting for
// more.
func (p *Producer) flush() {
	for {
		select {
		case m, ok := <-p.inbox:
			if !ok {
				return
			}
			_ = p.w.WriteMessages(context.Background(), m)
		default:
			return
		}
	}
}

// Publish wraps the payload in a versioned envelope and hands it to the
// writer loop. Fire and forget: order flow never blocks on the broker.
func (p *Producer) Publish(topic, eventType string, key, payload []byte) {
	if p == nil {
		return
	}
	env := Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     p.service,
		Payload:      payload,
	}
	select {
	case p.inbox <- kafka.Message{
		Topic: topic,
		Key:   key,
		Value: MustMarshal(env),
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(eventType)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}:
	default:
		log.Warn().Str("topic", topic).Msg("event inbox full, dropping")
	}
}

func (p *Producer) Close()      { close(p.inbox) }
func (p *Producer) WaitClosed() { <-p.closeCh }
