package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront-backend/internal/config"
)

// OrderPlaced is emitted once per successfully finalized order.
type OrderPlaced struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
	Total   string `json:"total"`
}

type OrderPublisher interface {
	OrderPlaced(ctx context.Context, event OrderPlaced) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewOrderPublisher returns a Kafka-backed publisher, or a no-op one when no
// brokers are configured.
func NewOrderPublisher(cfg *config.Kafka) OrderPublisher {
	if len(cfg.Brokers) == 0 {
		return noopPublisher{}
	}

	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			WriteTimeout: 10 * time.Second,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *kafkaPublisher) OrderPlaced(ctx context.Context, event OrderPlaced) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write order event: %w", err)
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (noopPublisher) OrderPlaced(context.Context, OrderPlaced) error { return nil }
func (noopPublisher) Close() error                                   { return nil }
