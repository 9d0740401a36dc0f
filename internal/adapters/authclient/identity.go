package authclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

var _ ports.AuthProvider = (*IdentityProvider)(nil)

// IdentityProvider talks to a GoTrue-compatible identity service.
// Every request carries the project key in the apikey header.
type IdentityProvider struct {
	base   string
	key    string
	http   *http.Client
	logger *slog.Logger
}

func NewIdentityProvider(baseURL, apiKey string, logger *slog.Logger) *IdentityProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentityProvider{
		base:   baseURL,
		key:    apiKey,
		http:   newHTTPClient(),
		logger: logger.With("component", "auth_identity"),
	}
}

func (p *IdentityProvider) Name() string { return "identity" }

type identityUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (u identityUser) toUser() domain.User {
	role, _ := u.UserMetadata["role"].(string)
	if role == "" {
		role = domain.DefaultRole
	}
	return domain.User{ID: u.ID, Email: u.Email, Role: role}
}

// identityReply covers the token, signup and user endpoints. Signup without
// auto-confirm returns the bare user, so ID/Email sit at the top level too.
type identityReply struct {
	AccessToken string        `json:"access_token"`
	User        *identityUser `json:"user"`
	identityUser

	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (r identityReply) failure() string {
	for _, m := range []string{r.ErrorDescription, r.Msg, r.Message, r.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}

func (p *IdentityProvider) headers(token string) map[string]string {
	h := map[string]string{"apikey": p.key}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

func (p *IdentityProvider) Login(ctx context.Context, creds domain.Credentials) domain.AuthResult {
	var r identityReply
	url := joinURL(p.base, "/auth/v1/token?grant_type=password")
	code, err := doJSON(ctx, p.http, http.MethodPost, url, p.headers(""), creds, &r)
	if res, failed := p.failed("login", code, err, r); failed {
		return res
	}
	if r.AccessToken == "" || r.User == nil {
		return domain.Failure(MsgUnexpectedStatus)
	}
	user := r.User.toUser()
	return domain.AuthResult{Success: true, Message: MsgLoginOK, User: &user, Token: r.AccessToken}
}

func (p *IdentityProvider) Signup(ctx context.Context, req domain.SignupRequest) domain.AuthResult {
	body := map[string]any{
		"email":    req.Email,
		"password": req.Password,
		"data":     map[string]string{"role": req.RoleOrDefault()},
	}
	var r identityReply
	code, err := doJSON(ctx, p.http, http.MethodPost, joinURL(p.base, "/auth/v1/signup"), p.headers(""), body, &r)
	if res, failed := p.failed("signup", code, err, r); failed {
		return res
	}

	u := r.User
	if u == nil {
		u = &r.identityUser
	}
	user := u.toUser()
	if r.AccessToken == "" {
		return domain.AuthResult{Success: true, Message: MsgSignupConfirm, User: &user}
	}
	return domain.AuthResult{Success: true, Message: MsgSignupOK, User: &user, Token: r.AccessToken}
}

func (p *IdentityProvider) Logout(ctx context.Context, token string) domain.AuthResult {
	if token == "" {
		return domain.AuthResult{Success: true, Message: MsgLoggedOut}
	}
	code, err := doJSON(ctx, p.http, http.MethodPost, joinURL(p.base, "/auth/v1/logout"), p.headers(token), nil, nil)
	if res, failed := p.failed("logout", code, err, identityReply{}); failed {
		return res
	}
	return domain.AuthResult{Success: true, Message: MsgLoggedOut}
}

func (p *IdentityProvider) CheckSession(ctx context.Context, token string) domain.AuthResult {
	if token == "" {
		return domain.Failure(MsgNoToken)
	}
	var r identityReply
	code, err := doJSON(ctx, p.http, http.MethodGet, joinURL(p.base, "/auth/v1/user"), p.headers(token), nil, &r)
	if err != nil {
		p.logger.Error("Auth check error", "error", err)
		return domain.Failure(MsgCheckFailed)
	}
	if code >= 300 || r.ID == "" {
		msg := r.failure()
		if msg == "" {
			msg = MsgCheckFailed
		}
		return domain.Failure(msg)
	}
	user := r.identityUser.toUser()
	return domain.AuthResult{Success: true, Message: MsgSessionOK, User: &user, Token: token}
}

// failed maps transport errors and error replies to a failed result.
func (p *IdentityProvider) failed(op string, code int, err error, r identityReply) (domain.AuthResult, bool) {
	var se *statusError
	switch {
	case errors.As(err, &se):
		return domain.Failure(MsgUnexpectedStatus), true
	case err != nil:
		p.logger.Error("Identity request failed", "operation", op, "error", err)
		return domain.Failure(MsgNetworkError), true
	case code >= 300:
		if msg := r.failure(); msg != "" {
			return domain.Failure(msg), true
		}
		return domain.Failure(MsgUnexpectedStatus), true
	}
	return domain.AuthResult{}, false
}
