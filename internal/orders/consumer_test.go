package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockCartClearer struct {
	cleared []string
	err     error
}

func (m *mockCartClearer) ClearCart(_ context.Context, sessionID string) error {
	if m.err != nil {
		return m.err
	}
	m.cleared = append(m.cleared, sessionID)
	return nil
}

func TestHandleEvent_ClearsCart(t *testing.T) {
	clearer := &mockCartClearer{}
	c := &Consumer{carts: clearer, logger: zap.NewNop()}

	c.handleEvent(context.Background(), []byte(`{"order_id":"o1","session_id":"sess-9"}`))

	assert.Equal(t, []string{"sess-9"}, clearer.cleared)
}

func TestHandleEvent_MissingSessionID(t *testing.T) {
	clearer := &mockCartClearer{}
	c := &Consumer{carts: clearer, logger: zap.NewNop()}

	c.handleEvent(context.Background(), []byte(`{"order_id":"o1"}`))

	assert.Empty(t, clearer.cleared)
}

func TestHandleEvent_MalformedPayload(t *testing.T) {
	clearer := &mockCartClearer{}
	c := &Consumer{carts: clearer, logger: zap.NewNop()}

	c.handleEvent(context.Background(), []byte(`not json`))

	assert.Empty(t, clearer.cleared)
}
