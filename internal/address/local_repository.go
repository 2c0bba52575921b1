package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
	"github.com/fid37is/toolup-store-sub000/internal/session"
)

// localRepository keeps the address book in the session store under the
// "shippingAddresses" key as a JSON array, read-modify-written whole.
type localRepository struct {
	store session.Store
}

func NewLocalRepository(store session.Store) AddressRepository {
	return &localRepository{store: store}
}

func (l *localRepository) ListAddresses(ctx context.Context, sessionID string) ([]domain.Address, error) {
	return l.read(ctx, sessionID)
}

func (l *localRepository) AddAddress(ctx context.Context, addr domain.Address) error {
	addrs, err := l.read(ctx, addr.SessionID)
	if err != nil {
		return err
	}
	now := time.Now()
	addr.CreatedAt = now
	addr.UpdatedAt = now
	return l.write(ctx, addr.SessionID, append(addrs, addr))
}

func (l *localRepository) UpdateAddress(ctx context.Context, addr domain.Address) error {
	addrs, err := l.read(ctx, addr.SessionID)
	if err != nil {
		return err
	}
	for i := range addrs {
		if addrs[i].ID == addr.ID {
			addr.CreatedAt = addrs[i].CreatedAt
			addr.UpdatedAt = time.Now()
			addrs[i] = addr
			return l.write(ctx, addr.SessionID, addrs)
		}
	}
	return ErrAddressNotFound
}

func (l *localRepository) DeleteAddress(ctx context.Context, sessionID, id string) error {
	addrs, err := l.read(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range addrs {
		if addrs[i].ID == id {
			addrs = append(addrs[:i], addrs[i+1:]...)
			return l.write(ctx, sessionID, addrs)
		}
	}
	return ErrAddressNotFound
}

func (l *localRepository) ClearDefaults(ctx context.Context, sessionID string) error {
	addrs, err := l.read(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range addrs {
		addrs[i].IsDefault = false
	}
	return l.write(ctx, sessionID, addrs)
}

func (l *localRepository) SetDefault(ctx context.Context, sessionID, id string) error {
	addrs, err := l.read(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range addrs {
		if addrs[i].ID == id {
			addrs[i].IsDefault = true
			addrs[i].UpdatedAt = time.Now()
			return l.write(ctx, sessionID, addrs)
		}
	}
	return ErrAddressNotFound
}

func (l *localRepository) read(ctx context.Context, sessionID string) ([]domain.Address, error) {
	data, err := l.store.Get(ctx, sessionID, session.KeyShippingAddrs)
	if errors.Is(err, session.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read addresses from session store: %w", err)
	}

	var addrs []domain.Address
	if err := json.Unmarshal(data, &addrs); err != nil {
		return nil, fmt.Errorf("unmarshal addresses failed: %w", err)
	}
	return addrs, nil
}

func (l *localRepository) write(ctx context.Context, sessionID string, addrs []domain.Address) error {
	data, err := json.Marshal(addrs)
	if err != nil {
		return fmt.Errorf("marshal addresses failed: %w", err)
	}
	if err := l.store.Set(ctx, sessionID, session.KeyShippingAddrs, data); err != nil {
		return fmt.Errorf("failed to write addresses to session store: %w", err)
	}
	return nil
}
