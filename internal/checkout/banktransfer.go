package checkout

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TransferTTL is how long a generated bank-transfer reference stays
// valid before the pending checkout is cancelled.
const TransferTTL = 15 * time.Minute

// BankTransferSession is the ephemeral reference a customer pays
// against, counting down second by second.
type BankTransferSession struct {
	Reference string
	ExpiresAt time.Time

	mu        sync.Mutex
	remaining int
	confirmed bool
	expired   bool
	stop      chan struct{}
	stopOnce  sync.Once
}

func (s *BankTransferSession) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

func (s *BankTransferSession) Confirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed
}

func (s *BankTransferSession) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired
}

// TransferManager owns the per-session bank transfer countdowns. Expiry
// fires the registered callback exactly once and tears the session down.
type TransferManager struct {
	ttl  time.Duration
	tick time.Duration

	mu       sync.Mutex
	sessions map[string]*BankTransferSession
}

func NewTransferManager(ttl, tick time.Duration) *TransferManager {
	return &TransferManager{
		ttl:      ttl,
		tick:     tick,
		sessions: make(map[string]*BankTransferSession),
	}
}

// Start generates a fresh reference for the session, replacing any
// previous one, and begins the countdown. onExpire runs at most once,
// only if the countdown reaches zero unconfirmed.
func (m *TransferManager) Start(sessionID string, onExpire func()) *BankTransferSession {
	ticks := int(m.ttl / m.tick)

	s := &BankTransferSession{
		Reference: uuid.NewString(),
		ExpiresAt: time.Now().Add(m.ttl),
		remaining: ticks,
		stop:      make(chan struct{}),
	}

	m.mu.Lock()
	if prev, ok := m.sessions[sessionID]; ok {
		prev.stopOnce.Do(func() { close(prev.stop) })
	}
	m.sessions[sessionID] = s
	m.mu.Unlock()

	go m.countdown(sessionID, s, onExpire)
	return s
}

func (m *TransferManager) countdown(sessionID string, s *BankTransferSession, onExpire func()) {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.remaining--
			done := s.remaining <= 0
			if done {
				s.expired = true
			}
			s.mu.Unlock()

			if done {
				m.remove(sessionID, s)
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}

// Get returns the live transfer session, if any.
func (m *TransferManager) Get(sessionID string) (*BankTransferSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	return s, ok
}

// Confirm marks the reference as paid and stops the countdown.
func (m *TransferManager) Confirm(sessionID, reference string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()

	if !ok {
		return ErrTransferExpired
	}

	s.mu.Lock()
	if s.Reference != reference || s.expired {
		s.mu.Unlock()
		return ErrTransferExpired
	}
	s.confirmed = true
	s.mu.Unlock()

	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

// Cancel tears down the session's countdown without firing the expiry
// callback.
func (m *TransferManager) Cancel(sessionID string) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if ok {
		s.stopOnce.Do(func() { close(s.stop) })
	}
}

func (m *TransferManager) remove(sessionID string, s *BankTransferSession) {
	m.mu.Lock()
	if cur, ok := m.sessions[sessionID]; ok && cur == s {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()
}
