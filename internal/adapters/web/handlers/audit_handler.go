package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

// AuditHandler handles audit logging operations
type AuditHandler struct {
	Service ports.AuditService
	logger  *slog.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(service ports.AuditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{Service: service, logger: logger}
}

// HandleGetLogs returns the newest audit logs. ?limit= caps the count.
func (h *AuditHandler) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		writeError(w, http.StatusServiceUnavailable, "Audit log is not configured")
		return
	}
	limit := defaultAuditLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxAuditLimit)
	}

	logs, err := h.Service.GetLogs(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to fetch audit logs", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch logs")
		return
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}
