package auth

import (
	"context"
	"sync"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository implements ports.UserRepository for testing.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockUserRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// fakeSessions is an in-memory ports.SessionStore.
type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]domain.Session)}
}

func (f *fakeSessions) Put(ctx context.Context, s domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeSessions) Get(ctx context.Context, token string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessions) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

// MockProvider implements ports.AuthProvider for testing.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Login(ctx context.Context, creds domain.Credentials) domain.AuthResult {
	return m.Called(ctx, creds).Get(0).(domain.AuthResult)
}

func (m *MockProvider) Signup(ctx context.Context, req domain.SignupRequest) domain.AuthResult {
	return m.Called(ctx, req).Get(0).(domain.AuthResult)
}

func (m *MockProvider) Logout(ctx context.Context, token string) domain.AuthResult {
	return m.Called(ctx, token).Get(0).(domain.AuthResult)
}

func (m *MockProvider) CheckSession(ctx context.Context, token string) domain.AuthResult {
	return m.Called(ctx, token).Get(0).(domain.AuthResult)
}

// MockAudit implements ports.AuditService for testing.
type MockAudit struct {
	mock.Mock
}

func (m *MockAudit) Log(ctx context.Context, actor domain.User, action domain.AuditAction, target, details string) error {
	return m.Called(ctx, actor, action, target, details).Error(0)
}

func (m *MockAudit) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}
