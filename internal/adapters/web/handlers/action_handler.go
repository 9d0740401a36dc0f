package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
)

const maxActionBody = 64 << 10

// ActionHandler accepts client-issued actions (filters, error dismissal, UI
// preferences) and dispatches them to the store.
type ActionHandler struct {
	store  *store.Store
	audit  ports.AuditService
	logger *slog.Logger
}

func NewActionHandler(st *store.Store, auditSvc ports.AuditService, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{store: st, audit: auditSvc, logger: logger}
}

type actionResponse struct {
	Action  string `json:"action"`
	Applied bool   `json:"applied"`
}

func (h *ActionHandler) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	var env store.Envelope
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxActionBody)).Decode(&env); err != nil {
		writeError(w, http.StatusBadRequest, "invalid action body")
		return
	}

	action, err := store.Decode(env)
	if errors.Is(err, store.ErrUnknownAction) || errors.Is(err, store.ErrUnsupportedFilter) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := store.Name(action)
	applied := h.store.Dispatch(action)
	if applied {
		if kind := auditKind(action); kind != "" {
			audit(r.Context(), h.audit, h.logger, kind, string(action.Slice()), name+" "+string(env.Payload))
		}
	}
	writeJSON(w, http.StatusOK, actionResponse{Action: name, Applied: applied})
}

// auditKind classifies client actions for the audit trail.
func auditKind(a store.Action) domain.AuditAction {
	name := store.Name(a)
	switch {
	case a.Slice() == store.SliceUI:
		return domain.ActionPreference
	case strings.HasSuffix(name, "/setFilters"):
		return domain.ActionFilterChange
	}
	return ""
}
