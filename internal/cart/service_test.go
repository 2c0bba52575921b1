package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

type mockRepository struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockRepository) GetCart(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, ErrCartNotFound
	}
	return m.cart, nil
}

func (m *mockRepository) SaveCart(_ context.Context, c *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.cart = c
	return nil
}

func (m *mockRepository) DeleteCart(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.cart = nil
	return nil
}

func (m *mockRepository) getCart() *domain.Cart {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.cart
}

func newService(remote, local *mockRepository) *Service {
	return NewService(remote, local, zap.NewNop())
}

func TestGetCart_RemotePreferred(t *testing.T) {
	remote := &mockRepository{cart: &domain.Cart{
		SessionID: "s1",
		Items:     []domain.CartItem{{ProductID: "p1", Quantity: 5}},
	}}
	local := &mockRepository{}

	sut := newService(remote, local)
	cart, err := sut.GetCart(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ProductID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestGetCart_RemoteFailureFallsBackToLocal(t *testing.T) {
	remote := &mockRepository{err: fmt.Errorf("mongo down")}
	local := &mockRepository{cart: &domain.Cart{
		SessionID: "s1",
		Items:     []domain.CartItem{{ProductID: "p2", Quantity: 1}},
	}}

	sut := newService(remote, local)
	cart, err := sut.GetCart(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
}

func TestGetCart_NowhereFound_ReturnsEmptyCart(t *testing.T) {
	sut := newService(&mockRepository{}, &mockRepository{})

	cart, err := sut.GetCart(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotNil(t, cart)
	assert.Equal(t, "s1", cart.SessionID)
	assert.Empty(t, cart.Items)
}

func TestAddItem_MergesQuantityForSameProduct(t *testing.T) {
	remote := &mockRepository{}
	local := &mockRepository{}
	sut := newService(remote, local)

	item := domain.CartItem{ProductID: "p1", Name: "Drill", Price: 1000, Quantity: 1}
	_, err := sut.AddItem(context.Background(), "s1", item)
	require.NoError(t, err)

	cart, err := sut.AddItem(context.Background(), "s1", item)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1, "no duplicate rows for the same product")
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddItem_RemoteWriteFailureIsSwallowed(t *testing.T) {
	remote := &mockRepository{err: fmt.Errorf("mongo down")}
	local := &mockRepository{}
	sut := newService(remote, local)

	cart, err := sut.AddItem(context.Background(), "s1", domain.CartItem{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.NotNil(t, local.getCart())
}

func TestAddItem_LocalWriteFailureIsSurfaced(t *testing.T) {
	remote := &mockRepository{}
	local := &mockRepository{err: fmt.Errorf("redis down")}
	sut := newService(remote, local)

	_, err := sut.AddItem(context.Background(), "s1", domain.CartItem{ProductID: "p1", Quantity: 1})
	require.ErrorContains(t, err, "redis down")
}

func TestAddItem_MirrorsToRemote(t *testing.T) {
	remote := &mockRepository{}
	local := &mockRepository{}
	sut := newService(remote, local)

	_, err := sut.AddItem(context.Background(), "s1", domain.CartItem{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return remote.getCart() != nil
	}, 100*time.Millisecond, 10*time.Millisecond, "cart was not mirrored to the document store")
}

func TestUpdateQuantity_SetsNewQuantity(t *testing.T) {
	local := &mockRepository{cart: &domain.Cart{
		SessionID: "s1",
		Items:     []domain.CartItem{{ProductID: "p1", Quantity: 2}},
	}}
	sut := newService(&mockRepository{}, local)

	cart, err := sut.UpdateQuantity(context.Background(), "s1", "p1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateQuantity_ZeroRemovesItem(t *testing.T) {
	local := &mockRepository{cart: &domain.Cart{
		SessionID: "s1",
		Items: []domain.CartItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	}}
	sut := newService(&mockRepository{}, local)

	cart, err := sut.UpdateQuantity(context.Background(), "s1", "p1", 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
}

func TestUpdateQuantity_UnknownItem(t *testing.T) {
	local := &mockRepository{cart: &domain.Cart{SessionID: "s1"}}
	sut := newService(&mockRepository{}, local)

	_, err := sut.UpdateQuantity(context.Background(), "s1", "ghost", 3)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestClearCart(t *testing.T) {
	remote := &mockRepository{cart: &domain.Cart{SessionID: "s1"}}
	local := &mockRepository{cart: &domain.Cart{SessionID: "s1"}}
	sut := newService(remote, local)

	require.NoError(t, sut.ClearCart(context.Background(), "s1"))
	assert.Nil(t, local.getCart())

	require.Eventually(t, func() bool {
		return remote.getCart() == nil
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestCartTotal(t *testing.T) {
	cart := &domain.Cart{Items: []domain.CartItem{
		{ProductID: "p1", Price: 1000, Quantity: 2},
		{ProductID: "p2", Price: 500, Quantity: 1},
	}}
	assert.Equal(t, int64(2500), cart.Total())
}
