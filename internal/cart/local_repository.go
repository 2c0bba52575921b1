package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
	"github.com/fid37is/toolup-store-sub000/internal/session"
)

// localRepository keeps the cart in the session store under the same
// "cart" key the browser used: a bare JSON array of items.
type localRepository struct {
	store session.Store
}

func NewLocalRepository(store session.Store) CartRepository {
	return &localRepository{store: store}
}

func (l *localRepository) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := l.store.Get(ctx, sessionID, session.KeyCart)
	if errors.Is(err, session.ErrKeyNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart from session store: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return &domain.Cart{
		SessionID: sessionID,
		Items:     items,
		UpdatedAt: time.Now(),
	}, nil
}

func (l *localRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := l.store.Set(ctx, cart.SessionID, session.KeyCart, data); err != nil {
		return fmt.Errorf("failed to write cart to session store: %w", err)
	}

	return nil
}

func (l *localRepository) DeleteCart(ctx context.Context, sessionID string) error {
	if err := l.store.Delete(ctx, sessionID, session.KeyCart); err != nil {
		return fmt.Errorf("failed to delete cart from session store: %w", err)
	}
	return nil
}
