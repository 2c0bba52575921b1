package address

import (
	"context"
	"errors"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

// AddressRepository is implemented by the document store and by the
// session-store fallback. The default-address invariant is enforced one
// level up, in the Service, as an explicit clear-then-set sequence.
type AddressRepository interface {
	ListAddresses(ctx context.Context, sessionID string) ([]domain.Address, error)
	AddAddress(ctx context.Context, addr domain.Address) error
	UpdateAddress(ctx context.Context, addr domain.Address) error
	DeleteAddress(ctx context.Context, sessionID, id string) error
	ClearDefaults(ctx context.Context, sessionID string) error
	SetDefault(ctx context.Context, sessionID, id string) error
}

var ErrAddressNotFound = errors.New("address not found")
