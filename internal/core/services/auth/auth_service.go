package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTokenExpired       = errors.New("token expired")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrInvalidSession     = errors.New("invalid session")
)

// MaxLoginAttempts is the number of consecutive failures after which an
// email is locked out until the next successful login.
const MaxLoginAttempts = 5

// AuthService backs the local auth provider.
// It coordinates credentials validation and session management.
type AuthService struct {
	repo          ports.UserRepository
	sessions      ports.SessionStore
	loginAttempts map[string]int
	mu            sync.RWMutex
	sessionTTL    time.Duration
	now           func() time.Time
}

// NewAuthService creates a new authentication service instance.
func NewAuthService(repo ports.UserRepository, sessions ports.SessionStore) *AuthService {
	return &AuthService{
		repo:          repo,
		sessions:      sessions,
		loginAttempts: make(map[string]int),
		sessionTTL:    24 * time.Hour,
		now:           time.Now,
	}
}

// Login validates credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (string, *domain.Account, error) {
	email := domain.NormalizeEmail(creds.Email)
	if err := s.checkRateLimit(email); err != nil {
		return "", nil, err
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.incrementAttempts(email)
		return "", nil, ErrInvalidCredentials // Generic error to avoid enumeration
	}

	if err := s.verifyPassword(account.PasswordHash, creds.Password); err != nil {
		s.incrementAttempts(email)
		return "", nil, ErrInvalidCredentials
	}

	s.resetAttempts(email)

	now := s.now()
	if err := s.repo.TouchLogin(ctx, account.ID, now); err != nil {
		return "", nil, fmt.Errorf("failed to record login: %w", err)
	}
	account.LastLogin = now

	token, err := s.createSession(ctx, account)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// Register provisions an account with a hashed password and opens a session.
func (s *AuthService) Register(ctx context.Context, req domain.SignupRequest) (string, *domain.Account, error) {
	if err := req.Validate(); err != nil {
		return "", nil, err
	}
	email := domain.NormalizeEmail(req.Email)

	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return "", nil, ErrEmailTaken
	case !errors.Is(err, domain.ErrAccountNotFound):
		return "", nil, fmt.Errorf("failed to look up account: %w", err)
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	account := domain.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         req.RoleOrDefault(),
		CreatedAt:    now,
		LastLogin:    now,
	}
	if err := s.repo.Save(ctx, account); err != nil {
		return "", nil, fmt.Errorf("failed to save account: %w", err)
	}

	token, err := s.createSession(ctx, &account)
	if err != nil {
		return "", nil, err
	}
	return token, &account, nil
}

// ValidateToken verifies a session token and returns the associated user.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(s.now()) {
		_ = s.Logout(ctx, token)
		return nil, ErrTokenExpired
	}

	account, err := s.repo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	user := account.User()
	return &user, nil
}

// Logout invalidates a session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Private helpers

func (s *AuthService) checkRateLimit(email string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loginAttempts[email] >= MaxLoginAttempts {
		return ErrRateLimitExceeded
	}
	return nil
}

func (s *AuthService) incrementAttempts(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginAttempts[email]++
}

func (s *AuthService) resetAttempts(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loginAttempts, email)
}

func (s *AuthService) verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) createSession(ctx context.Context, account *domain.Account) (string, error) {
	session := domain.Session{
		Token:     uuid.New().String(),
		UserID:    account.ID,
		Role:      account.Role,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return session.Token, nil
}
