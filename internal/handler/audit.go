package handler

import (
	"log/slog"
	"net/http"

	"vellum/internal/domain/services"
	"vellum/internal/httputil"
)

// AuditHandler handles audit log HTTP requests
type AuditHandler struct {
	auditService services.AuditService
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService services.AuditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// ListAuditEntries lists audit entries, newest first. Admin only.
// GET /api/audit?documentId=...
func (h *AuditHandler) ListAuditEntries(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	var documentID *string
	if v := r.URL.Query().Get("documentId"); v != "" {
		documentID = &v
	}

	entries, err := h.auditService.List(r.Context(), principal, documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}
