package auth

import (
	"context"
	"errors"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

// User-facing messages of the local provider.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgRateLimited        = "Too many failed attempts. Please try again later."
	MsgEmailTaken         = "An account with this email already exists"
	MsgNoToken            = "No token found"
	MsgSessionInvalid     = "Invalid or expired session"
	MsgLoginOK            = "Login successful"
	MsgSignupOK           = "Account created successfully"
	MsgLogoutOK           = "Logged out successfully"
	MsgSessionOK          = "Session is valid"
	MsgInternal           = "Authentication service error"
)

var _ ports.AuthProvider = (*LocalProvider)(nil)

// LocalProvider adapts AuthService to the AuthProvider contract.
type LocalProvider struct {
	svc *AuthService
}

func NewLocalProvider(svc *AuthService) *LocalProvider {
	return &LocalProvider{svc: svc}
}

func (p *LocalProvider) Name() string { return "local" }

func (p *LocalProvider) Login(ctx context.Context, creds domain.Credentials) domain.AuthResult {
	if err := creds.Validate(); err != nil {
		return failureFrom(err)
	}
	token, account, err := p.svc.Login(ctx, creds)
	if err != nil {
		return failureFrom(err)
	}
	user := account.User()
	return domain.AuthResult{Success: true, Message: MsgLoginOK, User: &user, Token: token}
}

func (p *LocalProvider) Signup(ctx context.Context, req domain.SignupRequest) domain.AuthResult {
	token, account, err := p.svc.Register(ctx, req)
	if err != nil {
		return failureFrom(err)
	}
	user := account.User()
	return domain.AuthResult{Success: true, Message: MsgSignupOK, User: &user, Token: token}
}

func (p *LocalProvider) Logout(ctx context.Context, token string) domain.AuthResult {
	if token == "" {
		return domain.Failure(MsgNoToken)
	}
	if err := p.svc.Logout(ctx, token); err != nil {
		return failureFrom(err)
	}
	return domain.AuthResult{Success: true, Message: MsgLogoutOK}
}

func (p *LocalProvider) CheckSession(ctx context.Context, token string) domain.AuthResult {
	if token == "" {
		return domain.Failure(MsgNoToken)
	}
	user, err := p.svc.ValidateToken(ctx, token)
	if err != nil {
		return failureFrom(err)
	}
	return domain.AuthResult{Success: true, Message: MsgSessionOK, User: user, Token: token}
}

// failureFrom maps service errors to user-facing results.
func failureFrom(err error) domain.AuthResult {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return domain.Failure(verr.Message)
	case errors.Is(err, ErrInvalidCredentials):
		return domain.Failure(MsgInvalidCredentials)
	case errors.Is(err, ErrRateLimitExceeded):
		return domain.Failure(MsgRateLimited)
	case errors.Is(err, ErrEmailTaken):
		return domain.Failure(MsgEmailTaken)
	case errors.Is(err, ErrInvalidSession), errors.Is(err, ErrTokenExpired):
		return domain.Failure(MsgSessionInvalid)
	}
	return domain.Failure(MsgInternal)
}
