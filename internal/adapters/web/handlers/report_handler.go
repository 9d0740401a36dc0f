package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/cyberdash/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/reporting"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
)

// Exporter renders a report document.
type Exporter interface {
	Export(doc *domain.ReportDocument) ([]byte, error)
	ContentType() string
}

// ReportHandler handles report export
type ReportHandler struct {
	store    *store.Store
	builder  *reporting.DocumentBuilder
	exporter Exporter
	audit    ports.AuditService
	logger   *slog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(st *store.Store, builder *reporting.DocumentBuilder, exporter Exporter, auditSvc ports.AuditService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{store: st, builder: builder, exporter: exporter, audit: auditSvc, logger: logger}
}

// HandleExport renders a listed report against the current threats and devices.
func (h *ReportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	generatedBy := "cyberdash"
	if user, ok := middleware.UserFromContext(r.Context()); ok && user.Email != "" {
		generatedBy = user.Email
	}

	doc, err := h.builder.Build(h.store.State(), id, generatedBy)
	if errors.Is(err, reporting.ErrReportNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, err := h.exporter.Export(doc)
	if err != nil {
		h.logger.Error("Report export failed", "report", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to export report")
		return
	}
	audit(r.Context(), h.audit, h.logger, domain.ActionReportExport, id, doc.Report.Name)

	filename := fmt.Sprintf("cyberdash_report_%s_%s.pdf", sanitize(id), doc.GeneratedAt.Format("20060102_150405"))
	w.Header().Set("Content-Type", h.exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
