// Package wishlist keeps a session's saved-for-later items in the
// session store under the same "wishlist" key the browser used.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
	"github.com/fid37is/toolup-store-sub000/internal/session"
)

var ErrItemNotFound = errors.New("item not found in wishlist")

type Service struct {
	store session.Store
}

func NewService(store session.Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, sessionID string) ([]domain.WishlistItem, error) {
	return s.read(ctx, sessionID)
}

// Add is idempotent per product: re-adding an item refreshes AddedAt
// instead of duplicating the row.
func (s *Service) Add(ctx context.Context, sessionID string, item domain.WishlistItem) ([]domain.WishlistItem, error) {
	items, err := s.read(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item.AddedAt = time.Now()
	replaced := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}

	if err := s.write(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) Remove(ctx context.Context, sessionID, productID string) ([]domain.WishlistItem, error) {
	items, err := s.read(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ProductID == productID {
			items = append(items[:i], items[i+1:]...)
			if err := s.write(ctx, sessionID, items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *Service) read(ctx context.Context, sessionID string) ([]domain.WishlistItem, error) {
	data, err := s.store.Get(ctx, sessionID, session.KeyWishlist)
	if errors.Is(err, session.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read wishlist: %w", err)
	}

	var items []domain.WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal wishlist failed: %w", err)
	}
	return items, nil
}

func (s *Service) write(ctx context.Context, sessionID string, items []domain.WishlistItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal wishlist failed: %w", err)
	}
	if err := s.store.Set(ctx, sessionID, session.KeyWishlist, data); err != nil {
		return fmt.Errorf("failed to write wishlist: %w", err)
	}
	return nil
}
