package ports

import (
	"context"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
)

// AuthProvider is the auth collaborator. Providers never return Go errors to
// the gate: transport and credential failures are reported as an
// unsuccessful AuthResult carrying a user-facing message.
type AuthProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, creds domain.Credentials) domain.AuthResult
	// Signup registers an account and opens a session for it.
	Signup(ctx context.Context, req domain.SignupRequest) domain.AuthResult
	// Logout invalidates the token on the provider side.
	Logout(ctx context.Context, token string) domain.AuthResult
	// CheckSession verifies a token and returns its user.
	CheckSession(ctx context.Context, token string) domain.AuthResult
}

// TokenStore holds the session token between process-local calls.
type TokenStore interface {
	Token() string
	SetToken(token string)
	ClearToken()
}

// UserRepository defines the persistence layer for local accounts.
type UserRepository interface {
	// Save creates or updates an account.
	Save(ctx context.Context, account domain.Account) error
	// GetByEmail retrieves an account by its email.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// GetByID retrieves an account by its ID.
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// TouchLogin records a successful login time.
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

// SessionStore keeps server-side sessions of the local provider.
type SessionStore interface {
	Put(ctx context.Context, session domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}
