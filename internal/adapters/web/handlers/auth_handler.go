package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lcalzada-xor/cyberdash/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

// AuthHandler exposes an AuthProvider over the dashboard REST auth contract:
// POST /auth/login, POST /auth/signup, GET /auth/verify, POST /auth/logout.
// Every reply is an AuthResult body.
type AuthHandler struct {
	provider ports.AuthProvider
}

func NewAuthHandler(provider ports.AuthProvider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBody)).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.Failure("Invalid request body"))
		return
	}
	h.reply(w, h.provider.Login(r.Context(), creds), http.StatusUnauthorized)
}

func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.Failure("Invalid request body"))
		return
	}
	h.reply(w, h.provider.Signup(r.Context(), req), http.StatusBadRequest)
}

func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	h.reply(w, h.provider.CheckSession(r.Context(), middleware.BearerToken(r)), http.StatusUnauthorized)
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.reply(w, h.provider.Logout(r.Context(), middleware.BearerToken(r)), http.StatusUnauthorized)
}

func (h *AuthHandler) reply(w http.ResponseWriter, res domain.AuthResult, failure int) {
	status := http.StatusOK
	if !res.Success {
		status = failure
	}
	writeJSON(w, status, res)
}
