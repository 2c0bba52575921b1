package orders

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CartClearer is the slice of the cart service the consumer needs.
type CartClearer interface {
	ClearCart(ctx context.Context, sessionID string) error
}

// Consumer empties a session's cart once its order has completed,
// mirroring the storefront clearing local storage after checkout.
type Consumer struct {
	carts  CartClearer
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(carts CartClearer, logger *zap.Logger, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    TopicOrderCompleted,
		GroupID:  "storefront-cart-clear",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{carts: carts, reader: reader, logger: logger}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("error closing kafka reader", zap.Error(err))
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.logger.Error("error reading message", zap.Error(err))
		return
	}

	c.handleEvent(ctx, m.Value)
}

func (c *Consumer) handleEvent(ctx context.Context, payload []byte) {
	var event OrderCompletedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.logger.Error("error parsing order-completed event", zap.Error(err))
		return
	}
	if event.SessionID == "" {
		c.logger.Error("order-completed event missing session_id")
		return
	}

	if err := c.carts.ClearCart(ctx, event.SessionID); err != nil {
		c.logger.Error("failed to clear cart after order",
			zap.String("session_id", event.SessionID), zap.Error(err))
	}
}
