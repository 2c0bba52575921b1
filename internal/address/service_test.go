package address

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

type mockAddressRepo struct {
	m     sync.Mutex
	addrs []domain.Address
	err   error
}

func (m *mockAddressRepo) ListAddresses(context.Context, string) ([]domain.Address, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Address, len(m.addrs))
	copy(out, m.addrs)
	return out, nil
}

func (m *mockAddressRepo) AddAddress(_ context.Context, addr domain.Address) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.addrs = append(m.addrs, addr)
	return nil
}

func (m *mockAddressRepo) UpdateAddress(_ context.Context, addr domain.Address) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.addrs {
		if m.addrs[i].ID == addr.ID {
			m.addrs[i] = addr
			return nil
		}
	}
	return ErrAddressNotFound
}

func (m *mockAddressRepo) DeleteAddress(_ context.Context, _, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.addrs {
		if m.addrs[i].ID == id {
			m.addrs = append(m.addrs[:i], m.addrs[i+1:]...)
			return nil
		}
	}
	return ErrAddressNotFound
}

func (m *mockAddressRepo) ClearDefaults(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.addrs {
		m.addrs[i].IsDefault = false
	}
	return nil
}

func (m *mockAddressRepo) SetDefault(_ context.Context, _, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.addrs {
		if m.addrs[i].ID == id {
			m.addrs[i].IsDefault = true
			return nil
		}
	}
	return ErrAddressNotFound
}

func validAddress(name string) domain.Address {
	return domain.Address{
		AddressName: name,
		Address:     "12 Airport Road",
		State:       "Delta",
		LGA:         "Warri South",
		City:        "Warri",
	}
}

func newTestService(remote, local *mockAddressRepo) *Service {
	return NewService(remote, local, zap.NewNop())
}

func defaults(addrs []domain.Address) []domain.Address {
	var out []domain.Address
	for _, a := range addrs {
		if a.IsDefault {
			out = append(out, a)
		}
	}
	return out
}

func TestAdd_FirstAddressBecomesDefault(t *testing.T) {
	remote := &mockAddressRepo{}
	sut := newTestService(remote, &mockAddressRepo{})

	added, err := sut.Add(context.Background(), "s1", validAddress("Home"))
	require.NoError(t, err)
	assert.True(t, added.IsDefault)
	assert.NotEmpty(t, added.ID)
}

func TestAdd_ValidationFailure(t *testing.T) {
	sut := newTestService(&mockAddressRepo{}, &mockAddressRepo{})

	addr := validAddress("Home")
	addr.State = ""
	addr.City = " "

	_, err := sut.Add(context.Background(), "s1", addr)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "state")
	assert.Contains(t, vErr.Fields, "city")
	assert.NotContains(t, vErr.Fields, "address")
}

func TestAdd_BadZip(t *testing.T) {
	sut := newTestService(&mockAddressRepo{}, &mockAddressRepo{})

	addr := validAddress("Home")
	addr.Zip = "12a456"

	_, err := sut.Add(context.Background(), "s1", addr)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "zip")
}

func TestSetDefault_ExactlyOneDefaultAfterSwitching(t *testing.T) {
	remote := &mockAddressRepo{}
	sut := newTestService(remote, &mockAddressRepo{})
	ctx := context.Background()

	a, err := sut.Add(ctx, "s1", validAddress("A"))
	require.NoError(t, err)
	b, err := sut.Add(ctx, "s1", validAddress("B"))
	require.NoError(t, err)

	require.NoError(t, sut.SetDefault(ctx, "s1", a.ID))
	require.NoError(t, sut.SetDefault(ctx, "s1", b.ID))

	addrs, err := sut.List(ctx, "s1")
	require.NoError(t, err)

	def := defaults(addrs)
	require.Len(t, def, 1, "exactly one default after switching")
	assert.Equal(t, b.ID, def[0].ID)
}

func TestDelete_DefaultPromotesFirstRemaining(t *testing.T) {
	remote := &mockAddressRepo{}
	sut := newTestService(remote, &mockAddressRepo{})
	ctx := context.Background()

	a, err := sut.Add(ctx, "s1", validAddress("A")) // becomes default
	require.NoError(t, err)
	_, err = sut.Add(ctx, "s1", validAddress("B"))
	require.NoError(t, err)
	_, err = sut.Add(ctx, "s1", validAddress("C"))
	require.NoError(t, err)

	require.NoError(t, sut.Delete(ctx, "s1", a.ID))

	addrs, err := sut.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, addrs, 2)

	def := defaults(addrs)
	require.Len(t, def, 1, "exactly one remaining address promoted to default")
	assert.Equal(t, "B", def[0].AddressName)
}

func TestDelete_NonDefaultLeavesDefaultAlone(t *testing.T) {
	sut := newTestService(&mockAddressRepo{}, &mockAddressRepo{})
	ctx := context.Background()

	a, err := sut.Add(ctx, "s1", validAddress("A"))
	require.NoError(t, err)
	b, err := sut.Add(ctx, "s1", validAddress("B"))
	require.NoError(t, err)

	require.NoError(t, sut.Delete(ctx, "s1", b.ID))

	def, err := sut.Default(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, def.ID)
}

func TestDelete_UnknownAddress(t *testing.T) {
	sut := newTestService(&mockAddressRepo{}, &mockAddressRepo{})

	err := sut.Delete(context.Background(), "s1", "ghost")
	require.ErrorIs(t, err, ErrAddressNotFound)
}

func TestMutations_FallBackToLocalWhenRemoteDown(t *testing.T) {
	remote := &mockAddressRepo{err: fmt.Errorf("mongo down")}
	local := &mockAddressRepo{}
	sut := newTestService(remote, local)
	ctx := context.Background()

	added, err := sut.Add(ctx, "s1", validAddress("Home"))
	require.NoError(t, err)

	addrs, err := sut.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.Equal(t, added.ID, addrs[0].ID)
}

func TestHappyPath_MirrorsToLocal(t *testing.T) {
	remote := &mockAddressRepo{}
	local := &mockAddressRepo{}
	sut := newTestService(remote, local)

	_, err := sut.Add(context.Background(), "s1", validAddress("Home"))
	require.NoError(t, err)

	localAddrs, err := local.ListAddresses(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, localAddrs, 1)
}
