package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/export"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
)

// ExportHandler downloads the filtered view of a collection.
type ExportHandler struct {
	store  *store.Store
	audit  ports.AuditService
	logger *slog.Logger
}

func NewExportHandler(st *store.Store, auditSvc ports.AuditService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{store: st, audit: auditSvc, logger: logger}
}

// HandleExport serves /api/export/{resource}?format=json|csv.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	resource := mux.Vars(r)["resource"]
	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatJSON
	}

	var buf bytes.Buffer
	err := export.Export(&buf, h.store.State(), resource, format)
	switch {
	case errors.Is(err, export.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, export.ErrNotExportable):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		h.logger.Error("Export failed", "resource", resource, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to export data")
		return
	}
	audit(r.Context(), h.audit, h.logger, domain.ActionDataExport, resource, format)

	filename := fmt.Sprintf("cyberdash_%s_%s.%s", resource, time.Now().Format("20060102_150405"), format)
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
