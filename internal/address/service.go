package address

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

// ValidationError carries field-scoped validation failures.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("address validation failed on %d field(s)", len(e.Fields))
}

// Service manages a session's saved addresses. Every mutation tries the
// document store first and falls back to the session store on failure;
// on the happy path the session store is refreshed too, so reads have a
// warm fallback. No reconciliation beyond that is attempted.
type Service struct {
	remote AddressRepository
	local  AddressRepository
	logger *zap.Logger
}

func NewService(remote, local AddressRepository, logger *zap.Logger) *Service {
	return &Service{remote: remote, local: local, logger: logger}
}

func (s *Service) List(ctx context.Context, sessionID string) ([]domain.Address, error) {
	addrs, err := s.remote.ListAddresses(ctx, sessionID)
	if err == nil {
		return addrs, nil
	}
	s.logger.Warn("remote address list failed, falling back to session store",
		zap.String("session_id", sessionID), zap.Error(err))
	return s.local.ListAddresses(ctx, sessionID)
}

// Add validates and stores a new address. The first address of a
// session becomes the default; an explicit IsDefault clears the flag on
// every other address first.
func (s *Service) Add(ctx context.Context, sessionID string, addr domain.Address) (*domain.Address, error) {
	if fieldErrs := Validate(addr); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	addr.ID = uuid.NewString()
	addr.SessionID = sessionID

	existing, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		addr.IsDefault = true
	}

	if addr.IsDefault {
		s.do(ctx, sessionID, "clear defaults", func(r AddressRepository) error {
			return r.ClearDefaults(ctx, sessionID)
		})
	}

	if err := s.doErr(ctx, sessionID, "add address", func(r AddressRepository) error {
		return r.AddAddress(ctx, addr)
	}); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (s *Service) Update(ctx context.Context, sessionID string, addr domain.Address) error {
	if fieldErrs := Validate(addr); len(fieldErrs) > 0 {
		return &ValidationError{Fields: fieldErrs}
	}
	addr.SessionID = sessionID

	if addr.IsDefault {
		s.do(ctx, sessionID, "clear defaults", func(r AddressRepository) error {
			return r.ClearDefaults(ctx, sessionID)
		})
	}

	return s.doErr(ctx, sessionID, "update address", func(r AddressRepository) error {
		return r.UpdateAddress(ctx, addr)
	})
}

// Delete removes an address. When the deleted address was the default
// and others remain, the first remaining one is promoted.
func (s *Service) Delete(ctx context.Context, sessionID, id string) error {
	addrs, err := s.List(ctx, sessionID)
	if err != nil {
		return err
	}

	var deleted *domain.Address
	for i := range addrs {
		if addrs[i].ID == id {
			deleted = &addrs[i]
			break
		}
	}
	if deleted == nil {
		return ErrAddressNotFound
	}

	if err := s.doErr(ctx, sessionID, "delete address", func(r AddressRepository) error {
		return r.DeleteAddress(ctx, sessionID, id)
	}); err != nil {
		return err
	}

	if deleted.IsDefault {
		for _, remaining := range addrs {
			if remaining.ID != id {
				s.do(ctx, sessionID, "promote default", func(r AddressRepository) error {
					return r.SetDefault(ctx, sessionID, remaining.ID)
				})
				break
			}
		}
	}
	return nil
}

// SetDefault makes the given address the session's only default. The
// sequence is clear-then-set across two operations; a crash in between
// can transiently leave zero defaults.
func (s *Service) SetDefault(ctx context.Context, sessionID, id string) error {
	if err := s.doErr(ctx, sessionID, "clear defaults", func(r AddressRepository) error {
		return r.ClearDefaults(ctx, sessionID)
	}); err != nil {
		return err
	}
	return s.doErr(ctx, sessionID, "set default", func(r AddressRepository) error {
		return r.SetDefault(ctx, sessionID, id)
	})
}

// Default returns the session's default address, ErrAddressNotFound if
// the session has none.
func (s *Service) Default(ctx context.Context, sessionID string) (*domain.Address, error) {
	addrs, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range addrs {
		if addrs[i].IsDefault {
			return &addrs[i], nil
		}
	}
	return nil, ErrAddressNotFound
}

// doErr runs op against the document store, falling back to the session
// store on failure. On remote success the same op refreshes the local
// mirror best-effort.
func (s *Service) doErr(ctx context.Context, sessionID, what string, op func(AddressRepository) error) error {
	remoteErr := op(s.remote)
	if remoteErr == nil {
		if err := op(s.local); err != nil && !errors.Is(err, ErrAddressNotFound) {
			s.logger.Warn("session-store address mirror failed",
				zap.String("op", what), zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil
	}
	if errors.Is(remoteErr, ErrAddressNotFound) {
		return remoteErr
	}

	s.logger.Warn("remote address write failed, falling back to session store",
		zap.String("op", what), zap.String("session_id", sessionID), zap.Error(remoteErr))
	return op(s.local)
}

// do is doErr for steps whose failure shouldn't abort the caller.
func (s *Service) do(ctx context.Context, sessionID, what string, op func(AddressRepository) error) {
	if err := s.doErr(ctx, sessionID, what, op); err != nil {
		s.logger.Warn("address operation failed",
			zap.String("op", what), zap.String("session_id", sessionID), zap.Error(err))
	}
}
