package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/screens"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
)

// RefreshHandler runs a single fetch of one resource on demand.
type RefreshHandler struct {
	store    *store.Store
	registry *screens.Registry
	timeout  time.Duration
	audit    ports.AuditService
	logger   *slog.Logger
}

func NewRefreshHandler(st *store.Store, registry *screens.Registry, timeout time.Duration, auditSvc ports.AuditService, logger *slog.Logger) *RefreshHandler {
	return &RefreshHandler{store: st, registry: registry, timeout: timeout, audit: auditSvc, logger: logger}
}

type refreshResponse struct {
	Resource   string                 `json:"resource"`
	Error      string                 `json:"error,omitempty"`
	Collection screens.CollectionView `json:"collection"`
}

// HandleRefresh fetches the resource and returns its collection. A failed
// fetch still answers 200: the failure is part of the collection state.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	resource := mux.Vars(r)["resource"]
	task, err := h.registry.Task(resource)
	if errors.Is(err, screens.ErrUnknownResource) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := refreshResponse{Resource: resource}
	if err := task(ctx); err != nil {
		resp.Error = err.Error()
	}
	audit(r.Context(), h.audit, h.logger, domain.ActionRefresh, resource, resp.Error)

	resp.Collection, _ = screens.Collection(h.store.State(), resource)
	writeJSON(w, http.StatusOK, resp)
}
