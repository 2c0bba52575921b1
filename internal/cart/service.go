package cart

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

// Service owns cart reads and writes. The session store is the source
// of truth; the document store is a best-effort mirror. Remote failures
// are logged and never surfaced.
type Service struct {
	remote CartRepository
	local  CartRepository
	logger *zap.Logger
	sfg    singleflight.Group // collapses concurrent reads per session
}

func NewService(remote, local CartRepository, logger *zap.Logger) *Service {
	return &Service{
		remote: remote,
		local:  local,
		logger: logger,
	}
}

func (s *Service) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		cart, err := s.remote.GetCart(ctx, sessionID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, ErrCartNotFound) {
			s.logger.Warn("remote cart read failed, falling back to session store",
				zap.String("session_id", sessionID), zap.Error(err))
		}

		cart, err = s.local.GetCart(ctx, sessionID)
		if errors.Is(err, ErrCartNotFound) {
			return &domain.Cart{
				SessionID: sessionID,
				Items:     nil,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if err != nil {
			return nil, err
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// AddItem merges by product id: adding a product already in the cart
// bumps its quantity instead of appending a duplicate row.
func (s *Service) AddItem(ctx context.Context, sessionID string, item domain.CartItem) (*domain.Cart, error) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	item.AddedAt = time.Now()

	cart, err := s.current(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			cart.Items[i].AddedAt = item.AddedAt
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets an item's quantity; zero or less removes the row.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := s.current(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			found = true
			if quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = quantity
			}
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	return s.UpdateQuantity(ctx, sessionID, productID, 0)
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.local.DeleteCart(ctx, sessionID); err != nil {
		return err
	}
	s.mirror(func(ctx context.Context) error {
		return s.remote.DeleteCart(ctx, sessionID)
	}, sessionID)
	return nil
}

var ErrItemNotFound = errors.New("item not found in cart")

// current reads the cart for a mutation. Unlike GetCart it prefers the
// session store, so a lagging mirror can't roll back local writes.
func (s *Service) current(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.local.GetCart(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}

	cart, err = s.remote.GetCart(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		s.logger.Warn("remote cart read failed during mutation",
			zap.String("session_id", sessionID), zap.Error(err))
	}
	return &domain.Cart{
		SessionID: sessionID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// save writes the session store synchronously and mirrors to the
// document store in the background.
func (s *Service) save(ctx context.Context, cart *domain.Cart) error {
	if err := s.local.SaveCart(ctx, cart); err != nil {
		return err
	}
	s.mirror(func(ctx context.Context) error {
		return s.remote.SaveCart(ctx, cart)
	}, cart.SessionID)
	return nil
}

func (s *Service) mirror(op func(context.Context) error, sessionID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := op(ctx); err != nil && !errors.Is(err, ErrCartNotFound) {
			s.logger.Warn("cart mirror write failed",
				zap.String("session_id", sessionID), zap.Error(err))
		}
	}()
}
