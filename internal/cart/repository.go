package cart

import (
	"context"
	"errors"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

// CartRepository is implemented by both the remote document store and
// the session-store fallback. Carts are read and written whole; the
// last write wins.
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	SaveCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

var ErrCartNotFound = errors.New("cart not found")
