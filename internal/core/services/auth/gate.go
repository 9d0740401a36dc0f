package auth

import (
	"context"
	"log/slog"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
	"github.com/lcalzada-xor/cyberdash/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Gate drives the auth slice of a store from an AuthProvider. Form
// validation happens here, before anything is dispatched.
type Gate struct {
	store    *store.Store
	provider ports.AuthProvider
	tokens   ports.TokenStore
	audit    ports.AuditService
	logger   *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithAudit records login, signup and logout through svc.
func WithAudit(svc ports.AuditService) GateOption {
	return func(g *Gate) { g.audit = svc }
}

// WithGateLogger sets the gate logger.
func WithGateLogger(l *slog.Logger) GateOption {
	return func(g *Gate) { g.logger = l }
}

// NewGate creates a gate. A nil tokens uses an in-memory store.
func NewGate(st *store.Store, provider ports.AuthProvider, tokens ports.TokenStore, opts ...GateOption) *Gate {
	if tokens == nil {
		tokens = &MemoryTokens{}
	}
	g := &Gate{
		store:    st,
		provider: provider,
		tokens:   tokens,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "auth_gate", "provider", provider.Name())
	return g
}

// Provider returns the underlying provider.
func (g *Gate) Provider() ports.AuthProvider {
	return g.provider
}

// Check verifies the stored token. The gate ends authenticated or
// unauthenticated; it never retries on its own.
func (g *Gate) Check(ctx context.Context) domain.AuthResult {
	g.store.Dispatch(store.SessionCheckStarted{})

	token := g.tokens.Token()
	var res domain.AuthResult
	if token == "" {
		res = domain.Failure(MsgNoToken)
	} else {
		res = g.call(ctx, "check", func(ctx context.Context) domain.AuthResult {
			return g.provider.CheckSession(ctx, token)
		})
	}

	if !res.Success || res.User == nil {
		g.tokens.ClearToken()
		g.store.Dispatch(store.SessionCheckFailed{Message: res.Message})
		return res
	}
	g.store.Dispatch(store.SessionCheckSucceeded{User: *res.User})
	return res
}

// Login validates creds and authenticates. A validation failure is returned
// as an error and leaves the store untouched.
func (g *Gate) Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	if err := creds.Validate(); err != nil {
		return domain.AuthResult{}, err
	}

	g.store.Dispatch(store.LoginStarted{})
	res := g.call(ctx, "login", func(ctx context.Context) domain.AuthResult {
		return g.provider.Login(ctx, creds)
	})

	if !res.Success || res.User == nil {
		g.store.Dispatch(store.LoginFailed{Message: res.Message})
		g.record(ctx, domain.User{Email: domain.NormalizeEmail(creds.Email)}, domain.ActionLoginFailed, res.Message)
		return res, nil
	}
	g.tokens.SetToken(res.Token)
	g.store.Dispatch(store.LoginSucceeded{User: *res.User})
	g.record(ctx, *res.User, domain.ActionLogin, "")
	return res, nil
}

// Signup validates req, registers and authenticates. Validation failures are
// returned as errors and leave the store untouched.
func (g *Gate) Signup(ctx context.Context, req domain.SignupRequest) (domain.AuthResult, error) {
	if err := req.Validate(); err != nil {
		return domain.AuthResult{}, err
	}
	req.Role = req.RoleOrDefault()

	g.store.Dispatch(store.LoginStarted{})
	res := g.call(ctx, "signup", func(ctx context.Context) domain.AuthResult {
		return g.provider.Signup(ctx, req)
	})

	if !res.Success || res.User == nil {
		g.store.Dispatch(store.LoginFailed{Message: res.Message})
		return res, nil
	}
	g.tokens.SetToken(res.Token)
	g.store.Dispatch(store.LoginSucceeded{User: *res.User})
	g.record(ctx, *res.User, domain.ActionSignup, res.User.Role)
	return res, nil
}

// Logout clears the user and the token. Provider-side failures are logged
// and do not keep the session open locally.
func (g *Gate) Logout(ctx context.Context) {
	prev := g.store.State().Auth.User
	if token := g.tokens.Token(); token != "" {
		res := g.call(ctx, "logout", func(ctx context.Context) domain.AuthResult {
			return g.provider.Logout(ctx, token)
		})
		if !res.Success {
			g.logger.Warn("Provider logout failed", "message", res.Message)
		}
	}
	g.tokens.ClearToken()
	g.store.Dispatch(store.Logout{})
	if prev != nil {
		g.record(ctx, *prev, domain.ActionLogout, "")
	}
}

// ClearError drops the recorded auth error.
func (g *Gate) ClearError() {
	g.store.Dispatch(store.ClearAuthError{})
}

func (g *Gate) call(ctx context.Context, op string, fn func(context.Context) domain.AuthResult) domain.AuthResult {
	ctx, span := telemetry.Tracer().Start(ctx, "auth."+op)
	defer span.End()

	res := fn(ctx)

	result := "success"
	if !res.Success {
		result = "failure"
	}
	span.SetAttributes(
		attribute.String("cyberdash.auth.provider", g.provider.Name()),
		attribute.Bool("cyberdash.auth.success", res.Success),
	)
	telemetry.AuthRequests.WithLabelValues(g.provider.Name(), op, result).Inc()
	g.logger.Info("Auth request", "operation", op, "success", res.Success)
	return res
}

func (g *Gate) record(ctx context.Context, actor domain.User, action domain.AuditAction, details string) {
	if g.audit == nil {
		return
	}
	if err := g.audit.Log(ctx, actor, action, "auth", details); err != nil {
		g.logger.Warn("Failed to record audit entry", "action", action, "error", err)
	}
}
