package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	kafka "github.com/ndiaye-labs/gatepass/internal/delivery/kafka"
	"github.com/ndiaye-labs/gatepass/pkg/logger"
)

type Producer interface {
	PublishTicketIssued(ctx context.Context, event kafka.TicketIssuedEvent) error
	PublishTicketRedeemed(ctx context.Context, event kafka.TicketRedeemedEvent) error
	PublishOrderCompleted(ctx context.Context, event kafka.OrderCompletedEvent) error
	Close() error
}

type implProducer struct {
	l    logger.Logger
	prod sarama.SyncProducer
}

func NewProducer(prod sarama.SyncProducer, l logger.Logger) Producer {
	return &implProducer{
		l:    l,
		prod: prod,
	}
}

func (p *implProducer) PublishTicketIssued(ctx context.Context, event kafka.TicketIssuedEvent) error {
	event.Timestamp = time.Now()
	// Partition by order_id so one purchase's tickets stay ordered.
	return p.send(ctx, kafka.TopicTicketIssued, event.OrderID, event)
}

func (p *implProducer) PublishTicketRedeemed(ctx context.Context, event kafka.TicketRedeemedEvent) error {
	event.Timestamp = time.Now()
	return p.send(ctx, kafka.TopicTicketRedeemed, event.TicketID, event)
}

func (p *implProducer) PublishOrderCompleted(ctx context.Context, event kafka.OrderCompletedEvent) error {
	event.Timestamp = time.Now()
	return p.send(ctx, kafka.TopicOrderCompleted, event.OrderID, event)
}

func (p *implProducer) send(ctx context.Context, topic, key string, event any) error {
	val, err := json.Marshal(event)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.send: %v", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("timestamp"),
				Value: []byte(time.Now().Format(time.RFC3339)),
			},
		},
	}

	_, _, err = p.prod.SendMessage(msg)
	return err
}

func (p *implProducer) Close() error {
	if p.prod == nil {
		return nil
	}
	return p.prod.Close()
}

type noopProducer struct{}

// NewNoopProducer is used when Kafka is disabled; events are dropped.
func NewNoopProducer() Producer {
	return noopProducer{}
}

func (noopProducer) PublishTicketIssued(ctx context.Context, event kafka.TicketIssuedEvent) error {
	return nil
}

func (noopProducer) PublishTicketRedeemed(ctx context.Context, event kafka.TicketRedeemedEvent) error {
	return nil
}

func (noopProducer) PublishOrderCompleted(ctx context.Context, event kafka.OrderCompletedEvent) error {
	return nil
}

func (noopProducer) Close() error {
	return nil
}
