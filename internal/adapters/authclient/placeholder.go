package authclient

import (
	"context"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

var _ ports.AuthProvider = Placeholder{}

// Placeholder stands in when no auth backend is configured. It keeps the
// process running and rejects every request.
type Placeholder struct{}

func (Placeholder) Name() string { return "placeholder" }

func (Placeholder) Login(context.Context, domain.Credentials) domain.AuthResult {
	return domain.Failure(MsgNotConfigured)
}

func (Placeholder) Signup(context.Context, domain.SignupRequest) domain.AuthResult {
	return domain.Failure(MsgNotConfigured)
}

func (Placeholder) Logout(context.Context, string) domain.AuthResult {
	return domain.AuthResult{Success: true, Message: MsgLoggedOut}
}

func (Placeholder) CheckSession(context.Context, string) domain.AuthResult {
	return domain.Failure(MsgNotConfigured)
}
