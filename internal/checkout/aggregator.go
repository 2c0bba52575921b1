package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/fid37is/toolup-store-sub000/internal/catalog"
	"github.com/fid37is/toolup-store-sub000/internal/domain"
	"github.com/fid37is/toolup-store-sub000/internal/session"
)

// Mode selects where the line items come from: the session's cart or a
// single "buy now" item stored outside it.
type Mode string

const (
	ModeCart   Mode = "cart"
	ModeDirect Mode = "direct"
)

// CartReader is the slice of the cart service the aggregator needs.
type CartReader interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
}

// Aggregator produces the priced line items for a checkout, refreshing
// each one from the catalog. A failed lookup keeps the stale cached
// item; one bad product never invalidates the rest.
type Aggregator struct {
	catalog catalog.ProductLookup
	carts   CartReader
	store   session.Store
	logger  *zap.Logger
}

func NewAggregator(lookup catalog.ProductLookup, carts CartReader, store session.Store, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		catalog: lookup,
		carts:   carts,
		store:   store,
		logger:  logger,
	}
}

// storedItem tolerates the legacy shapes the direct-purchase snapshot
// has been written in: some records carry "productId", older ones only
// "id".
type storedItem struct {
	ProductID string `json:"productId"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int    `json:"quantity"`
}

func (s storedItem) toCartItem() domain.CartItem {
	qty := s.Quantity
	if qty < 1 {
		qty = 1
	}
	return domain.CartItem{
		ProductID: normalizeProductID(s.ProductID, s.ID, s.Name),
		Name:      s.Name,
		Price:     s.Price,
		ImageURL:  s.ImageURL,
		Quantity:  qty,
	}
}

// LineItems returns the refreshed, ordered line items for the session.
// An empty result is ErrEmptyCheckout, which callers treat as "redirect
// away with a notification".
func (a *Aggregator) LineItems(ctx context.Context, sessionID string, mode Mode) ([]domain.CartItem, error) {
	var items []domain.CartItem

	switch mode {
	case ModeDirect:
		item, err := a.directItem(ctx, sessionID)
		if err != nil {
			if errors.Is(err, ErrDirectItemNotFound) {
				return nil, ErrEmptyCheckout
			}
			return nil, err
		}
		items = []domain.CartItem{item}

	case ModeCart:
		cart, err := a.carts.GetCart(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to get cart: %w", err)
		}
		items = make([]domain.CartItem, len(cart.Items))
		copy(items, cart.Items)
		for i := range items {
			items[i].ProductID = normalizeProductID(items[i].ProductID, "", items[i].Name)
		}

	default:
		return nil, ErrUnknownCheckoutMode
	}

	if len(items) == 0 {
		return nil, ErrEmptyCheckout
	}

	for i := range items {
		a.refresh(ctx, &items[i])
	}
	return items, nil
}

func (a *Aggregator) directItem(ctx context.Context, sessionID string) (domain.CartItem, error) {
	data, err := a.store.Get(ctx, sessionID, session.KeyDirectPurchase)
	if errors.Is(err, session.ErrKeyNotFound) {
		return domain.CartItem{}, ErrDirectItemNotFound
	}
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("failed to read direct purchase item: %w", err)
	}

	var stored storedItem
	if err := json.Unmarshal(data, &stored); err != nil {
		return domain.CartItem{}, fmt.Errorf("unmarshal direct purchase item: %w", err)
	}
	return stored.toCartItem(), nil
}

// refresh overwrites price, name and image from the live catalog. On
// lookup failure the stale copy stands.
func (a *Aggregator) refresh(ctx context.Context, item *domain.CartItem) {
	product, err := a.catalog.GetProduct(ctx, item.ProductID)
	if err != nil {
		a.logger.Warn("product refresh failed, keeping cached item",
			zap.String("product_id", item.ProductID), zap.Error(err))
		return
	}
	item.Name = product.Name
	item.Price = product.Price
	item.ImageURL = product.ImageURL
}

// normalizeProductID guarantees every line item has a product id:
// productId, then id, then the slugified name.
func normalizeProductID(productID, id, name string) string {
	if productID != "" {
		return productID
	}
	if id != "" {
		return id
	}
	return slugify(name)
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
