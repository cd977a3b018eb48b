package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	commonlog "media_gateway/server/common/log"
	"media_gateway/server/gateway/domain"
)

// EventSink receives storage events after the backend effect has
// committed. Implementations are best-effort and must be safe for
// concurrent use; a sink failure never fails the originating request.
type EventSink interface {
	Publish(ctx context.Context, event domain.StorageEvent)
}

// MultiSink fans one event out to several sinks.
type MultiSink []EventSink

func (m MultiSink) Publish(ctx context.Context, event domain.StorageEvent) {
	for _, sink := range m {
		sink.Publish(ctx, event)
	}
}

const storageEventsExchange = "storage.events"

// AMQPSink publishes storage events as JSON to a durable fanout exchange
// with routing key <tenant>.<action>.
type AMQPSink struct {
	channel *amqp.Channel
}

func NewAMQPSink(conn *amqp.Connection) (*AMQPSink, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(storageEventsExchange, "fanout", true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &AMQPSink{channel: ch}, nil
}

func (s *AMQPSink) Publish(ctx context.Context, event domain.StorageEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		return
	}
	routingKey := event.TenantID + "." + event.Action
	err = s.channel.PublishWithContext(ctx, storageEventsExchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   time.Now(),
	})
	if err != nil {
		commonlog.Warnf("publish storage event %s/%s: %v", event.TenantID, event.Action, err)
	}
}

func (s *AMQPSink) Close() {
	_ = s.channel.Close()
}
