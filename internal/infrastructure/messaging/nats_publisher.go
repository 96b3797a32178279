package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/finchmedia/finch/pkg/config"
	"github.com/finchmedia/finch/pkg/interfaces"
)

// EventEnvelope wraps a domain event with transport metadata.
type EventEnvelope struct {
	AggregateID string           `json:"aggregate_id"`
	EventType   string           `json:"event_type"`
	OccurredAt  int64            `json:"occurred_at"`
	Data        interfaces.Event `json:"data"`
}

// NATSPublisher publishes domain events to a JetStream stream. It is
// the production implementation of the event bus; subscriptions run as
// durable JetStream consumers.
type NATSPublisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	stream string
	logger interfaces.Logger
}

// NewNATSPublisher connects to NATS, ensures the event stream exists,
// and returns the publisher plus a cleanup function that drains the
// connection.
func NewNATSPublisher(cfg config.NATSConfig, logger interfaces.Logger) (*NATSPublisher, func(), error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("finch-catalog"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", interfaces.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", interfaces.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	p := &NATSPublisher{nc: nc, js: js, stream: cfg.Stream, logger: logger}
	if err := p.ensureStream(context.Background()); err != nil {
		nc.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := nc.Drain(); err != nil {
			logger.Error("Failed to drain NATS connection", interfaces.Error(err))
		}
		nc.Close()
	}
	return p, cleanup, nil
}

func (p *NATSPublisher) ensureStream(ctx context.Context) error {
	_, err := p.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        strings.ToUpper(p.stream),
		Description: "Catalog domain events",
		Subjects:    []string{p.stream + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Discard:     jetstream.DiscardOld,
	})
	if err != nil {
		return fmt.Errorf("creating event stream: %w", err)
	}
	return nil
}

// Publish sends one domain event. The subject is the stream prefix plus
// the event type, e.g. "catalog.video.media_updated".
func (p *NATSPublisher) Publish(ctx context.Context, event interfaces.Event) error {
	envelope := EventEnvelope{
		AggregateID: event.AggregateID(),
		EventType:   event.EventType(),
		OccurredAt:  event.OccurredAt(),
		Data:        event,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", p.stream, event.EventType())

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ack, err := p.js.Publish(pubCtx, subject, data)
	if err != nil {
		return fmt.Errorf("publishing event to %s: %w", subject, err)
	}

	p.logger.Debug("Event published",
		interfaces.String("subject", subject),
		interfaces.String("aggregate_id", event.AggregateID()),
		interfaces.String("stream", ack.Stream))
	return nil
}

// Subscribe attaches a durable JetStream consumer for one event type.
func (p *NATSPublisher) Subscribe(eventType string, handler interfaces.EventHandler) error {
	ctx := context.Background()
	subject := fmt.Sprintf("%s.%s", p.stream, eventType)

	consumer, err := p.js.CreateOrUpdateConsumer(ctx, strings.ToUpper(p.stream), jetstream.ConsumerConfig{
		Durable:       "catalog-" + strings.ReplaceAll(eventType, ".", "-"),
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    3,
		AckWait:       30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("creating consumer for %s: %w", subject, err)
	}

	_, err = consumer.Consume(func(msg jetstream.Msg) {
		var envelope struct {
			AggregateID string          `json:"aggregate_id"`
			EventType   string          `json:"event_type"`
			OccurredAt  int64           `json:"occurred_at"`
			Data        json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(msg.Data(), &envelope); err != nil {
			p.logger.Error("Failed to decode event envelope",
				interfaces.String("subject", subject),
				interfaces.Error(err))
			msg.Term()
			return
		}

		event := remoteEvent{
			aggregateID: envelope.AggregateID,
			eventType:   envelope.EventType,
			occurredAt:  envelope.OccurredAt,
		}
		if err := handler.Handle(context.Background(), event); err != nil {
			p.logger.Error("Event handler failed",
				interfaces.String("subject", subject),
				interfaces.Error(err))
			msg.Nak()
			return
		}
		msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("consuming %s: %w", subject, err)
	}
	return nil
}

// remoteEvent is the bus-side view of an event received over NATS.
type remoteEvent struct {
	aggregateID string
	eventType   string
	occurredAt  int64
}

func (e remoteEvent) EventType() string   { return e.eventType }
func (e remoteEvent) AggregateID() string { return e.aggregateID }
func (e remoteEvent) OccurredAt() int64   { return e.occurredAt }
