package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/auth"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
)

const maxAuthBody = 16 << 10

// SessionHandler drives the dashboard's auth gate. The provider token stays
// inside the gate and is never returned to the browser.
type SessionHandler struct {
	gate  *auth.Gate
	store *store.Store
}

func NewSessionHandler(gate *auth.Gate, st *store.Store) *SessionHandler {
	return &SessionHandler{gate: gate, store: st}
}

type sessionResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Title   string          `json:"title,omitempty"`
	Auth    store.AuthState `json:"auth"`
}

func (h *SessionHandler) reply(w http.ResponseWriter, res domain.AuthResult) {
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, sessionResponse{Success: res.Success, Message: res.Message, Auth: h.store.State().Auth})
}

func (h *SessionHandler) rejectInvalid(w http.ResponseWriter, err error) bool {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, sessionResponse{
			Message: verr.Message,
			Title:   verr.Title,
			Auth:    h.store.State().Auth,
		})
		return true
	}
	return false
}

// HandleGet returns the auth slice.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.State().Auth)
}

func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBody)).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.gate.Login(r.Context(), creds)
	if h.rejectInvalid(w, err) {
		return
	}
	h.reply(w, res)
}

func (h *SessionHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.gate.Signup(r.Context(), req)
	if h.rejectInvalid(w, err) {
		return
	}
	h.reply(w, res)
}

func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.gate.Logout(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{Success: true, Auth: h.store.State().Auth})
}

// HandleCheck re-verifies the stored provider token.
func (h *SessionHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	h.reply(w, h.gate.Check(r.Context()))
}

// HandleClearError dismisses the auth error.
func (h *SessionHandler) HandleClearError(w http.ResponseWriter, r *http.Request) {
	h.gate.ClearError()
	writeJSON(w, http.StatusOK, h.store.State().Auth)
}
