package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

var _ ports.SessionStore = (*Memory)(nil)

// Memory keeps sessions in process. Expired entries are dropped lazily on Get
// and by Sweep.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]domain.Session), now: time.Now}
}

func (m *Memory) Put(ctx context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *Memory) Get(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.Expired(m.now()) {
		m.Delete(ctx, token)
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (m *Memory) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// Sweep removes expired sessions and returns how many were dropped.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for tok, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, tok)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
