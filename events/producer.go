package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"jewelry-service/models"
)

// Producer publishes checkout events for downstream consumers
// (fulfillment, notifications). Delivery is best-effort from the
// caller's point of view; failures are returned, not retried here.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	zap.L().Info("kafka producer initialized",
		zap.Strings("brokers", brokers),
		zap.String("topic", topic))
	return &Producer{writer: writer, topic: topic}
}

func (p *Producer) PublishCheckout(ctx context.Context, event models.CheckoutEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		zap.L().Error("failed to publish checkout event",
			zap.String("order_number", event.OrderNumber),
			zap.String("topic", p.topic),
			zap.Error(err))
		return err
	}
	zap.L().Info("checkout event published",
		zap.String("order_number", event.OrderNumber),
		zap.String("topic", p.topic))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
