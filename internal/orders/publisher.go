package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

const TopicOrderCompleted = "order-completed"

// OrderCompletedEvent is the payload published when an order lands in
// the ledger. Keyed by session id so per-session ordering holds.
type OrderCompletedEvent struct {
	OrderID       string             `json:"order_id"`
	SessionID     string             `json:"session_id"`
	Items         []domain.OrderItem `json:"items"`
	Total         int64              `json:"total"`
	ShippingFee   int64              `json:"shipping_fee"`
	PaymentMethod string             `json:"payment_method"`
	Currency      string             `json:"currency"`
	CompletedAt   time.Time          `json:"completed_at"`
}

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicOrderCompleted,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) PublishOrderCompleted(ctx context.Context, order *domain.Order) error {
	event := OrderCompletedEvent{
		OrderID:       order.ID.String(),
		SessionID:     order.SessionID,
		Items:         order.Items,
		Total:         order.Total,
		ShippingFee:   order.ShippingFee,
		PaymentMethod: string(order.PaymentMethod),
		Currency:      order.Currency,
		CompletedAt:   time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order-completed event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.SessionID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order_completed")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order-completed message: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
