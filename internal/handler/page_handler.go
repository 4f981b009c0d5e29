package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/contactware/backend/internal/model"
	"github.com/contactware/backend/internal/repository"
	"github.com/contactware/backend/internal/service"
)

// PageHandler serves the admin CRUD endpoints for contact pages.
type PageHandler struct {
	svc service.PageService
}

func NewPageHandler(svc service.PageService) *PageHandler {
	return &PageHandler{svc: svc}
}

// List handles GET /api/admin/pages.
func (h *PageHandler) List(w http.ResponseWriter, r *http.Request) {
	pages, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("page list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if pages == nil {
		pages = []*model.ContactPage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

// Get handles GET /api/admin/pages/{id}.
func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		slog.Error("page get failed", "error", err, "page_id", r.PathValue("id"))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// UnreadCount handles GET /api/admin/pages/{id}/unread-count.
func (h *PageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.UnreadMessageCount(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("unread count failed", "error", err, "page_id", r.PathValue("id"))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// Create handles POST /api/admin/pages.
func (h *PageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var page model.ContactPage
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.svc.Create(r.Context(), &page); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &page)
}

// Update handles PUT /api/admin/pages/{id}.
func (h *PageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var page model.ContactPage
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	page.ID = r.PathValue("id")

	if err := h.svc.Update(r.Context(), &page); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &page)
}

// Delete handles DELETE /api/admin/pages/{id}.
func (h *PageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
