package authclient

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

var _ ports.AuthProvider = (*RESTProvider)(nil)

// RESTProvider speaks the dashboard auth API:
// POST {base}/auth/login, POST {base}/auth/signup, GET {base}/auth/verify.
// Logout is client-side only.
type RESTProvider struct {
	base   string
	http   *http.Client
	logger *slog.Logger
}

func NewRESTProvider(baseURL string, logger *slog.Logger) *RESTProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &RESTProvider{
		base:   baseURL,
		http:   newHTTPClient(),
		logger: logger.With("component", "auth_rest"),
	}
}

func (p *RESTProvider) Name() string { return "rest" }

func (p *RESTProvider) Login(ctx context.Context, creds domain.Credentials) domain.AuthResult {
	var res domain.AuthResult
	if _, err := doJSON(ctx, p.http, http.MethodPost, joinURL(p.base, "/auth/login"), nil, creds, &res); err != nil {
		p.logger.Error("Login error", "error", err)
		return domain.Failure(MsgNetworkError)
	}
	return res
}

func (p *RESTProvider) Signup(ctx context.Context, req domain.SignupRequest) domain.AuthResult {
	var res domain.AuthResult
	if _, err := doJSON(ctx, p.http, http.MethodPost, joinURL(p.base, "/auth/signup"), nil, req, &res); err != nil {
		p.logger.Error("Signup error", "error", err)
		return domain.Failure(MsgNetworkError)
	}
	return res
}

func (p *RESTProvider) Logout(ctx context.Context, token string) domain.AuthResult {
	return domain.AuthResult{Success: true, Message: MsgLoggedOut}
}

func (p *RESTProvider) CheckSession(ctx context.Context, token string) domain.AuthResult {
	if token == "" {
		return domain.Failure(MsgNoToken)
	}
	var res domain.AuthResult
	headers := map[string]string{"Authorization": "Bearer " + token}
	if _, err := doJSON(ctx, p.http, http.MethodGet, joinURL(p.base, "/auth/verify"), headers, nil, &res); err != nil {
		p.logger.Error("Auth check error", "error", err)
		return domain.Failure(MsgCheckFailed)
	}
	if res.Success && res.Token == "" {
		res.Token = token
	}
	return res
}
