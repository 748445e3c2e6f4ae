package handler

import (
	"log/slog"
	"net/http"

	"vellum/internal/domain/services"
	"vellum/internal/httputil"
)

// TaxonomyHandler handles the per-owner category and client registries
type TaxonomyHandler struct {
	categoryService services.CategoryService
	clientService   services.ClientService
	logger          *slog.Logger
}

// NewTaxonomyHandler creates a new taxonomy handler
func NewTaxonomyHandler(categoryService services.CategoryService, clientService services.ClientService, logger *slog.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		categoryService: categoryService,
		clientService:   clientService,
		logger:          logger,
	}
}

// createTaxonomyRequest carries the single field both registries accept
type createTaxonomyRequest struct {
	Name string `json:"name"`
}

// ListCategories lists the principal's categories
// GET /api/categories
func (h *TaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	categories, err := h.categoryService.List(r.Context(), principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a category for the principal
// POST /api/categories
func (h *TaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	var req createTaxonomyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(r.Context(), req.Name, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, category)
}

// DeleteCategory removes one of the principal's categories
// DELETE /api/categories/{id}
func (h *TaxonomyHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Category ID is required")
		return
	}

	if err := h.categoryService.Delete(r.Context(), id, principal); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListClients lists the principal's clients
// GET /api/clients
func (h *TaxonomyHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	clients, err := h.clientService.List(r.Context(), principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, clients)
}

// CreateClient adds a client for the principal
// POST /api/clients
func (h *TaxonomyHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	var req createTaxonomyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.clientService.Create(r.Context(), req.Name, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, client)
}

// DeleteClient removes one of the principal's clients
// DELETE /api/clients/{id}
func (h *TaxonomyHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	principal := httputil.GetPrincipal(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Client ID is required")
		return
	}

	if err := h.clientService.Delete(r.Context(), id, principal); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
