package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lcalzada-xor/cyberdash/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// audit records an entry when an audit service is configured. Failures are
// logged and never fail the request.
func audit(ctx context.Context, svc ports.AuditService, logger *slog.Logger, action domain.AuditAction, target, details string) {
	if svc == nil {
		return
	}
	actor, _ := middleware.UserFromContext(ctx)
	if err := svc.Log(ctx, actor, action, target, details); err != nil {
		logger.Warn("Failed to record audit entry", "action", action, "error", err)
	}
}
