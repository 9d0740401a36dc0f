package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTProvider_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var creds domain.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(domain.Failure("Invalid email or password"))
			return
		}
		json.NewEncoder(w).Encode(domain.AuthResult{
			Success: true,
			Message: "Login successful",
			User:    &domain.User{ID: "u1", Email: creds.Email, Role: "Admin"},
			Token:   "tok",
		})
	}))
	defer srv.Close()

	p := NewRESTProvider(srv.URL+"/api", nil)
	assert.Equal(t, "rest", p.Name())

	res := p.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret1"})
	require.True(t, res.Success)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "a@b.c", res.User.Email)

	res = p.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "wrong"})
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid email or password", res.Message)
}

func TestRESTProvider_SignupSendsConfirmation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "secret1", body["confirmPassword"])
		json.NewEncoder(w).Encode(domain.AuthResult{Success: true, Message: "ok", Token: "t"})
	}))
	defer srv.Close()

	res := NewRESTProvider(srv.URL, nil).Signup(context.Background(), domain.SignupRequest{
		Email: "a@b.c", Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.True(t, res.Success)
	assert.Equal(t, "t", res.Token)
}

func TestRESTProvider_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewRESTProvider(url, nil)
	res := p.Login(context.Background(), domain.Credentials{Email: "a", Password: "b"})
	assert.Equal(t, domain.Failure(MsgNetworkError), res)

	res = p.Signup(context.Background(), domain.SignupRequest{Email: "a"})
	assert.Equal(t, domain.Failure(MsgNetworkError), res)

	res = p.CheckSession(context.Background(), "tok")
	assert.Equal(t, domain.Failure(MsgCheckFailed), res)
}

func TestRESTProvider_CheckSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verify", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(domain.Failure("Invalid or expired session"))
			return
		}
		json.NewEncoder(w).Encode(domain.AuthResult{Success: true, User: &domain.User{ID: "u1"}})
	}))
	defer srv.Close()

	p := NewRESTProvider(srv.URL, nil)

	assert.Equal(t, domain.Failure(MsgNoToken), p.CheckSession(context.Background(), ""))

	res := p.CheckSession(context.Background(), "good")
	require.True(t, res.Success)
	assert.Equal(t, "good", res.Token)

	res = p.CheckSession(context.Background(), "bad")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid or expired session", res.Message)

	assert.True(t, p.Logout(context.Background(), "good").Success)
}

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "No API key found in request"})
			return
		}
		switch r.URL.Path {
		case "/auth/v1/token":
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "secret1" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{
					"error":             "invalid_grant",
					"error_description": "Invalid login credentials",
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "jwt",
				"user": map[string]any{
					"id": "u1", "email": body["email"],
					"user_metadata": map[string]string{"role": "Admin"},
				},
			})
		case "/auth/v1/signup":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			data := body["data"].(map[string]any)
			json.NewEncoder(w).Encode(map[string]any{
				"id": "u2", "email": body["email"],
				"user_metadata": data,
			})
		case "/auth/v1/user":
			if r.Header.Get("Authorization") != "Bearer jwt" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"msg": "invalid JWT"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"id": "u1", "email": "a@b.c"})
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestIdentityProvider_Login(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	p := NewIdentityProvider(srv.URL, "anon", nil)
	assert.Equal(t, "identity", p.Name())

	res := p.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret1"})
	require.True(t, res.Success)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, domain.User{ID: "u1", Email: "a@b.c", Role: "Admin"}, *res.User)

	res = p.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "nope"})
	assert.Equal(t, domain.Failure("Invalid login credentials"), res)
}

func TestIdentityProvider_MissingKey(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	res := NewIdentityProvider(srv.URL, "", nil).Login(context.Background(), domain.Credentials{Email: "a", Password: "b"})
	assert.Equal(t, domain.Failure("No API key found in request"), res)
}

func TestIdentityProvider_SignupWithoutSession(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()

	res := NewIdentityProvider(srv.URL, "anon", nil).Signup(context.Background(), domain.SignupRequest{
		Email: "new@b.c", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.True(t, res.Success)
	assert.Equal(t, MsgSignupConfirm, res.Message)
	assert.Empty(t, res.Token)
	assert.Equal(t, domain.DefaultRole, res.User.Role)
	assert.Equal(t, "u2", res.User.ID)
}

func TestIdentityProvider_SessionAndLogout(t *testing.T) {
	srv := newIdentityServer(t)
	defer srv.Close()
	p := NewIdentityProvider(srv.URL, "anon", nil)

	res := p.CheckSession(context.Background(), "jwt")
	require.True(t, res.Success)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, domain.DefaultRole, res.User.Role)

	res = p.CheckSession(context.Background(), "expired")
	assert.Equal(t, domain.Failure("invalid JWT"), res)

	assert.Equal(t, domain.Failure(MsgNoToken), p.CheckSession(context.Background(), ""))
	assert.True(t, p.Logout(context.Background(), "jwt").Success)
}

func TestPlaceholder(t *testing.T) {
	var p Placeholder
	ctx := context.Background()
	assert.Equal(t, "placeholder", p.Name())
	assert.False(t, p.Login(ctx, domain.Credentials{}).Success)
	assert.False(t, p.Signup(ctx, domain.SignupRequest{}).Success)
	assert.False(t, p.CheckSession(ctx, "x").Success)
	assert.True(t, p.Logout(ctx, "x").Success)
}
