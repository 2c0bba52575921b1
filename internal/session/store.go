// Package session is the server-side replacement for the browser's local
// storage: a per-session JSON key-value store with a change broadcast so
// other parts of the app can refresh counts after a write.
package session

import (
	"context"
	"errors"
)

// Keys mirroring the persisted browser keys.
const (
	KeyCart            = "cart"
	KeyWishlist        = "wishlist"
	KeyShippingAddrs   = "shippingAddresses"
	KeyDirectPurchase  = "directPurchaseItem"
	KeyCheckoutForm    = "checkoutFormData"
	KeyCheckoutAddress = "checkoutAddressData"
	KeyGuestCheckout   = "guestCheckout"
)

type Store interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID, key string) error
}

var ErrKeyNotFound = errors.New("session key not found")

// Change describes a single write or delete against the store.
type Change struct {
	SessionID string
	Key       string
}

// Notifier fans writes out to registered listeners. Dispatch is
// best-effort: a full listener channel drops the notification rather
// than blocking the writer.
type Notifier struct {
	listeners []chan Change
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers a listener. Not safe to call after Publish is in
// use from other goroutines; register everything during wiring.
func (n *Notifier) Subscribe() <-chan Change {
	ch := make(chan Change, 16)
	n.listeners = append(n.listeners, ch)
	return ch
}

func (n *Notifier) Publish(c Change) {
	for _, ch := range n.listeners {
		select {
		case ch <- c:
		default:
		}
	}
}
